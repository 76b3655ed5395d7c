// Package analytics computes derived metrics over a user's fasting event
// history. Every function is a pure computation over an already-fetched
// slice of events; fetching and filtering by user is the caller's job.
//
// Duration arithmetic is in whole minutes truncated toward zero, and hours
// for checkpoint comparison are floored minutes-to-hours division. Malformed
// events (stop before start) are rejected by the session layer before they
// are ever persisted, so the functions here do not defend against them.
package analytics

import (
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
)

// Checkpoints holds the fixed duration thresholds, in hours, a completed
// fast may reach. Ordered ascending.
var Checkpoints = []int{4, 12, 14, 16, 18, 24, 36, 48, 72}

// Status describes the user's open fasting session.
type Status struct {
	StartTime      time.Time
	ElapsedMinutes int64
}

// AverageDuration returns the mean duration in minutes over completed
// events, truncated toward zero, or nil when there are no completed events.
// "No data" and "zero minutes" are different answers.
func AverageDuration(events []domain.FastingEvent) *int64 {
	var total int64
	var count int64
	for i := range events {
		if events[i].Completed() {
			total += events[i].DurationMinutes()
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := total / count
	return &avg
}

// TotalDuration returns the summed duration in minutes over completed
// events. A sum over an empty set is legitimately zero.
func TotalDuration(events []domain.FastingEvent) int64 {
	var total int64
	for i := range events {
		if events[i].Completed() {
			total += events[i].DurationMinutes()
		}
	}
	return total
}

// CurrentStreak counts consecutive calendar days ending today on which the
// user started at least one fast. Events must be ordered by start time,
// most recent first. Several fasts on one day count once, an open session
// still counts for its start day, and any gap breaks the chain.
func CurrentStreak(events []domain.FastingEvent, today time.Time) int {
	expected := truncateToDay(today)
	streak := 0
	for i := range events {
		day := truncateToDay(events[i].StartTime)
		if streak > 0 && day.Equal(expected.AddDate(0, 0, 1)) {
			// another fast on an already-counted day
			continue
		}
		if !day.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// CheckpointsAchieved returns the union, over all completed events, of
// checkpoint thresholds the event's floored hour count reached. Ascending
// and deduplicated; achieving 16h means {4, 12, 14, 16}, never beyond.
func CheckpointsAchieved(events []domain.FastingEvent) []int {
	maxHours := int64(-1)
	for i := range events {
		if !events[i].Completed() {
			continue
		}
		hours := events[i].DurationMinutes() / 60
		if hours > maxHours {
			maxHours = hours
		}
	}

	var achieved []int
	for _, threshold := range Checkpoints {
		if maxHours >= int64(threshold) {
			achieved = append(achieved, threshold)
		}
	}
	return achieved
}

// RangeSummary sums completed-event durations in minutes for events lying
// entirely within [rangeStart, rangeEnd], both bounds inclusive. An event
// straddling either bound is excluded outright, not clipped.
func RangeSummary(events []domain.FastingEvent, rangeStart, rangeEnd time.Time) int64 {
	var total int64
	for i := range events {
		ev := &events[i]
		if !ev.Completed() {
			continue
		}
		if ev.StartTime.Before(rangeStart) || ev.StopTime.After(rangeEnd) {
			continue
		}
		total += ev.DurationMinutes()
	}
	return total
}

// CurrentStatus returns the start time and elapsed minutes of the user's
// open event, or nil when no session is active.
func CurrentStatus(events []domain.FastingEvent, now time.Time) *Status {
	for i := range events {
		if !events[i].Completed() {
			return &Status{
				StartTime:      events[i].StartTime,
				ElapsedMinutes: int64(now.Sub(events[i].StartTime) / time.Minute),
			}
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
