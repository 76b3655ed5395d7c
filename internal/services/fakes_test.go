package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
)

// fixedClock returns a constant instant so assertions on created_at and
// elapsed time are stable.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakeEventRepo is an in-memory EventRepository. Individual operations are
// guarded by a mutex just like a real database serializes single
// statements; it deliberately does NOT serialize check-then-write
// sequences, so races the session layer fails to lock against stay visible
// in tests.
type fakeEventRepo struct {
	mu     sync.Mutex
	nextID uint
	events []domain.FastingEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1}
}

func (r *fakeEventRepo) FindActive(_ context.Context, userID uint) (*domain.FastingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].UserID == userID && r.events[i].StopTime == nil {
			ev := r.events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) Insert(_ context.Context, event *domain.FastingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	r.nextID++
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) StopEvent(_ context.Context, eventID uint, stopTime time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == eventID && r.events[i].StopTime == nil {
			stop := stopTime
			r.events[i].StopTime = &stop
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventRepo) SetGoal(_ context.Context, eventID uint, goalID *uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == eventID {
			r.events[i].GoalID = goalID
			return nil
		}
	}
	return apperrors.NewNotFoundError().WithContext("event_id", eventID)
}

func (r *fakeEventRepo) ListByUser(_ context.Context, userID uint) ([]domain.FastingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FastingEvent
	for i := range r.events {
		if r.events[i].UserID == userID {
			out = append(out, r.events[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (r *fakeEventRepo) ListByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]domain.FastingEvent, error) {
	all, _ := r.ListByUser(ctx, userID)
	var out []domain.FastingEvent
	for _, ev := range all {
		if !ev.StartTime.Before(start) && !ev.StartTime.After(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// fakeGoalRepo is an in-memory GoalRepository.
type fakeGoalRepo struct {
	mu     sync.Mutex
	nextID uint
	goals  []domain.FastingGoal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{nextID: 1}
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *domain.FastingGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal.ID = r.nextID
	r.nextID++
	r.goals = append(r.goals, *goal)
	return nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id uint) (*domain.FastingGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.goals {
		if r.goals[i].ID == id {
			goal := r.goals[i]
			return &goal, nil
		}
	}
	return nil, apperrors.NewNotFoundError().WithContext("goal_id", id)
}

func (r *fakeGoalRepo) ListByUser(_ context.Context, userID uint) ([]domain.FastingGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FastingGoal
	for i := range r.goals {
		if r.goals[i].UserID == userID {
			out = append(out, r.goals[i])
		}
	}
	return out, nil
}
