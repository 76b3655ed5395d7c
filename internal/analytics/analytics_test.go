package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
)

var base = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC) // a Monday, 08:00

func completed(userID uint, start time.Time, d time.Duration) domain.FastingEvent {
	stop := start.Add(d)
	return domain.FastingEvent{UserID: userID, StartTime: start, StopTime: &stop}
}

func open(userID uint, start time.Time) domain.FastingEvent {
	return domain.FastingEvent{UserID: userID, StartTime: start}
}

func TestAverageDuration(t *testing.T) {
	tests := []struct {
		name   string
		events []domain.FastingEvent
		want   *int64
	}{
		{name: "no events", events: nil, want: nil},
		{name: "only open events", events: []domain.FastingEvent{open(1, base)}, want: nil},
		{
			name: "single completed",
			events: []domain.FastingEvent{
				completed(1, base, 12*time.Hour),
			},
			want: ptr(720),
		},
		{
			name: "mean truncates toward zero",
			events: []domain.FastingEvent{
				completed(1, base, 10*time.Minute),
				completed(1, base.Add(24*time.Hour), 15*time.Minute),
			},
			want: ptr(12), // (10+15)/2 = 12.5
		},
		{
			name: "open events excluded from mean",
			events: []domain.FastingEvent{
				open(1, base.Add(48*time.Hour)),
				completed(1, base, 60*time.Minute),
			},
			want: ptr(60),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageDuration(tt.events)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("AverageDuration() = %v, want %v", fmtPtr(got), fmtPtr(tt.want))
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("AverageDuration() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestTotalDurationZeroVsAbsent(t *testing.T) {
	// For a user with zero completed events the total is 0 while the
	// average is nil; the two must stay distinguishable.
	events := []domain.FastingEvent{open(1, base)}

	if got := TotalDuration(events); got != 0 {
		t.Fatalf("TotalDuration() = %d, want 0", got)
	}
	if got := AverageDuration(events); got != nil {
		t.Fatalf("AverageDuration() = %d, want nil", *got)
	}
}

func TestTotalDuration(t *testing.T) {
	events := []domain.FastingEvent{
		completed(1, base.Add(48*time.Hour), 16*time.Hour),
		completed(1, base, 12*time.Hour),
		open(1, base.Add(72*time.Hour)),
	}
	if got, want := TotalDuration(events), int64(28*60); got != want {
		t.Fatalf("TotalDuration() = %d, want %d", got, want)
	}
}

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2024, 3, 10, 19, 30, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2024, 3, 10+offset, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		starts []time.Time // most recent first
		want   int
	}{
		{name: "no events", starts: nil, want: 0},
		{name: "single fast today", starts: []time.Time{day(0, 8)}, want: 1},
		{
			name:   "three consecutive days",
			starts: []time.Time{day(0, 8), day(-1, 9), day(-2, 7)},
			want:   3,
		},
		{
			name:   "gap breaks the chain",
			starts: []time.Time{day(0, 8), day(-2, 7)},
			want:   1,
		},
		{
			name:   "no fast today",
			starts: []time.Time{day(-1, 9), day(-2, 7)},
			want:   0,
		},
		{
			name:   "two fasts on one day count once",
			starts: []time.Time{day(0, 18), day(0, 6), day(-1, 9)},
			want:   2,
		},
		{
			name:   "duplicate day then gap",
			starts: []time.Time{day(0, 18), day(0, 6), day(-3, 9)},
			want:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []domain.FastingEvent
			for i, s := range tt.starts {
				if i == 0 {
					// the most recent fast may still be in progress;
					// it counts for its start day regardless
					events = append(events, open(1, s))
					continue
				}
				events = append(events, completed(1, s, 10*time.Hour))
			}
			if got := CurrentStreak(events, today); got != tt.want {
				t.Fatalf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckpointsAchieved(t *testing.T) {
	tests := []struct {
		name   string
		events []domain.FastingEvent
		want   []int
	}{
		{name: "no completed events", events: []domain.FastingEvent{open(1, base)}, want: nil},
		{
			name:   "under first threshold",
			events: []domain.FastingEvent{completed(1, base, 3*time.Hour)},
			want:   nil,
		},
		{
			name:   "exactly 16h reaches the 16h checkpoint",
			events: []domain.FastingEvent{completed(1, base, 16*time.Hour)},
			want:   []int{4, 12, 14, 16},
		},
		{
			name:   "one minute short of 16h",
			events: []domain.FastingEvent{completed(1, base, 15*time.Hour+59*time.Minute)},
			want:   []int{4, 12, 14},
		},
		{
			name: "union across history",
			events: []domain.FastingEvent{
				completed(1, base.Add(48*time.Hour), 18*time.Hour),
				completed(1, base, 5*time.Hour),
			},
			want: []int{4, 12, 14, 16, 18},
		},
		{
			name:   "top threshold",
			events: []domain.FastingEvent{completed(1, base, 80*time.Hour)},
			want:   []int{4, 12, 14, 16, 18, 24, 36, 48, 72},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckpointsAchieved(tt.events)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("CheckpointsAchieved() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeSummaryExcludesStraddlingEvents(t *testing.T) {
	rangeStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)

	events := []domain.FastingEvent{
		// starts before the range, stops inside: excluded entirely
		completed(1, rangeStart.Add(-2*time.Hour), 6*time.Hour),
		// fully inside
		completed(1, rangeStart.Add(8*time.Hour), 12*time.Hour),
		// stops after the range end: excluded entirely
		completed(1, rangeEnd.Add(-time.Hour), 3*time.Hour),
		// open events never count
		open(1, rangeStart.Add(30*time.Hour)),
	}

	if got, want := RangeSummary(events, rangeStart, rangeEnd), int64(720); got != want {
		t.Fatalf("RangeSummary() = %d, want %d", got, want)
	}
}

func TestRangeSummaryBoundsInclusive(t *testing.T) {
	rangeStart := base
	rangeEnd := base.Add(12 * time.Hour)

	// event exactly filling the range counts
	events := []domain.FastingEvent{completed(1, rangeStart, 12*time.Hour)}
	if got, want := RangeSummary(events, rangeStart, rangeEnd), int64(720); got != want {
		t.Fatalf("RangeSummary() = %d, want %d", got, want)
	}
}

func TestCurrentStatus(t *testing.T) {
	now := base.Add(26 * time.Hour) // Tue 10:00

	t.Run("active session", func(t *testing.T) {
		events := []domain.FastingEvent{
			open(7, base.Add(24*time.Hour)), // Tue 08:00
			completed(7, base, 12*time.Hour),
		}
		status := CurrentStatus(events, now)
		if status == nil {
			t.Fatal("CurrentStatus() = nil, want active status")
		}
		if !status.StartTime.Equal(base.Add(24 * time.Hour)) {
			t.Fatalf("status.StartTime = %v, want %v", status.StartTime, base.Add(24*time.Hour))
		}
		if status.ElapsedMinutes != 120 {
			t.Fatalf("status.ElapsedMinutes = %d, want 120", status.ElapsedMinutes)
		}
	})

	t.Run("no active session", func(t *testing.T) {
		events := []domain.FastingEvent{completed(7, base, 12*time.Hour)}
		if status := CurrentStatus(events, now); status != nil {
			t.Fatalf("CurrentStatus() = %+v, want nil", status)
		}
	})
}

// TestUserSevenScenario pins the combined behavior for one history: a
// completed 12h Monday fast plus a Tuesday session still in progress.
func TestUserSevenScenario(t *testing.T) {
	monday := base                      // Mon 08:00
	tuesday := base.Add(24 * time.Hour) // Tue 08:00
	now := tuesday.Add(3 * time.Hour)

	events := []domain.FastingEvent{
		open(7, tuesday),
		completed(7, monday, 12*time.Hour),
	}

	status := CurrentStatus(events, now)
	if status == nil || !status.StartTime.Equal(tuesday) {
		t.Fatalf("CurrentStatus() = %+v, want start %v", status, tuesday)
	}
	if got := TotalDuration(events); got != 720 {
		t.Fatalf("TotalDuration() = %d, want 720", got)
	}
	// 12h exactly: the 12h checkpoint is reached, the 14h one is not
	if got, want := CheckpointsAchieved(events), []int{4, 12}; !reflect.DeepEqual(got, want) {
		t.Fatalf("CheckpointsAchieved() = %v, want %v", got, want)
	}
	if got := CurrentStreak(events, now); got != 2 {
		t.Fatalf("CurrentStreak() = %d, want 2", got)
	}
}

func ptr(v int64) *int64 { return &v }

func fmtPtr(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
