package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
	"github.com/mpolivanov/fasting-tracker-bot/internal/utils"
)

// ExportService renders a user's fasting history for download. Open events
// are exported with their elapsed duration at export time.
type ExportService struct {
	events domain.EventRepository
	clock  domain.Clock
}

// NewExportService creates a new export service
func NewExportService(events domain.EventRepository, clock domain.Clock) *ExportService {
	return &ExportService{events: events, clock: clock}
}

type exportedEvent struct {
	StartTime       time.Time  `json:"start_time"`
	StopTime        *time.Time `json:"stop_time"`
	DurationMinutes int64      `json:"duration_minutes"`
}

// ExportCSV returns the user's history as CSV with the columns
// start_time, stop_time, duration_minutes.
func (s *ExportService) ExportCSV(ctx context.Context, userID uint) ([]byte, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"start_time", "stop_time", "duration_minutes"}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeInternal, "EXPORT", "Failed to write export")
	}

	for i := range events {
		ev := &events[i]
		stop := ""
		minutes := ev.DurationMinutes()
		if ev.StopTime != nil {
			stop = utils.FormatTimestamp(*ev.StopTime)
		} else {
			minutes = int64(s.clock.Now().Sub(ev.StartTime) / time.Minute)
		}
		record := []string{
			utils.FormatTimestamp(ev.StartTime),
			stop,
			strconv.FormatInt(minutes, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrorTypeInternal, "EXPORT", "Failed to write export")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeInternal, "EXPORT", "Failed to write export")
	}
	return buf.Bytes(), nil
}

// ExportJSON returns the user's history as a JSON array.
func (s *ExportService) ExportJSON(ctx context.Context, userID uint) ([]byte, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	exported := make([]exportedEvent, 0, len(events))
	for i := range events {
		ev := &events[i]
		minutes := ev.DurationMinutes()
		if ev.StopTime == nil {
			minutes = int64(s.clock.Now().Sub(ev.StartTime) / time.Minute)
		}
		exported = append(exported, exportedEvent{
			StartTime:       ev.StartTime,
			StopTime:        ev.StopTime,
			DurationMinutes: minutes,
		})
	}

	data, err := json.Marshal(exported)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeInternal, "EXPORT", "Failed to serialize export")
	}
	return data, nil
}
