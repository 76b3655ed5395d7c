package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpolivanov/fasting-tracker-bot/internal/apperrors"
	"github.com/mpolivanov/fasting-tracker-bot/internal/domain"
)

func newTestFastingService() (*FastingService, *fakeEventRepo, *fakeGoalRepo) {
	events := newFakeEventRepo()
	goals := newFakeGoalRepo()
	clock := fixedClock{now: testNow}
	sessions := NewSessionService(events, clock)
	return NewFastingService(sessions, events, goals, clock), events, goals
}

func TestFacadeStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFastingService()

	status, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, status)

	start := testNow.Add(-90 * time.Minute)
	_, err = svc.Start(ctx, 1, start, nil)
	require.NoError(t, err)

	status, err = svc.Status(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.StartTime.Equal(start))
	assert.Equal(t, int64(90), status.ElapsedMinutes)

	_, err = svc.Stop(ctx, 1, testNow)
	require.NoError(t, err)

	status, err = svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestFacadeAverageVsTotalOnEmptyHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFastingService()

	avg, err := svc.AverageDuration(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, avg)

	total, err := svc.TotalDuration(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestFacadeAnalyticsOverHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFastingService()

	// two completed fasts: 12h and 16h
	_, err := svc.Start(ctx, 1, testNow.Add(-72*time.Hour), nil)
	require.NoError(t, err)
	_, err = svc.Stop(ctx, 1, testNow.Add(-60*time.Hour))
	require.NoError(t, err)

	_, err = svc.Start(ctx, 1, testNow.Add(-40*time.Hour), nil)
	require.NoError(t, err)
	_, err = svc.Stop(ctx, 1, testNow.Add(-24*time.Hour))
	require.NoError(t, err)

	avg, err := svc.AverageDuration(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, int64(14*60), *avg)

	total, err := svc.TotalDuration(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(28*60), total)

	checkpoints, err := svc.Checkpoints(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 12, 14, 16}, checkpoints)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// most recent first
	assert.True(t, history[0].StartTime.After(history[1].StartTime))
}

func TestFacadeStreak(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFastingService()

	day := func(offset int) time.Time {
		return time.Date(2024, 3, 5+offset, 8, 0, 0, 0, time.UTC)
	}

	for offset := -2; offset <= -1; offset++ {
		_, err := svc.Start(ctx, 1, day(offset), nil)
		require.NoError(t, err)
		_, err = svc.Stop(ctx, 1, day(offset).Add(14*time.Hour))
		require.NoError(t, err)
	}
	// today's fast is still open
	_, err := svc.Start(ctx, 1, day(0), nil)
	require.NoError(t, err)

	streak, err := svc.Streak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestFacadeWeeklySummary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFastingService()

	weekStart := time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7)

	// straddles the week start: excluded entirely
	_, err := svc.Start(ctx, 1, weekStart.Add(-3*time.Hour), nil)
	require.NoError(t, err)
	_, err = svc.Stop(ctx, 1, weekStart.Add(9*time.Hour))
	require.NoError(t, err)

	// fully inside
	_, err = svc.Start(ctx, 1, weekStart.Add(24*time.Hour), nil)
	require.NoError(t, err)
	_, err = svc.Stop(ctx, 1, weekStart.Add(40*time.Hour))
	require.NoError(t, err)

	summary, err := svc.WeeklySummary(ctx, 1, weekStart, weekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(16*60), summary)
}

func TestFacadeGoalLinking(t *testing.T) {
	ctx := context.Background()
	svc, events, goals := newTestFastingService()

	goal := &domain.FastingGoal{UserID: 1, GoalDuration: 16, Deadline: testNow.AddDate(0, 1, 0)}
	require.NoError(t, goals.Create(ctx, goal))

	_, err := svc.Start(ctx, 1, testNow, nil)
	require.NoError(t, err)

	require.NoError(t, svc.LinkGoal(ctx, 1, goal.ID))

	active, err := events.FindActive(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, active.GoalID)
	assert.Equal(t, goal.ID, *active.GoalID)

	require.NoError(t, svc.UnlinkGoal(ctx, 1))
	active, err = events.FindActive(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, active.GoalID)
}

func TestFacadeGoalLinkingChecksOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _, goals := newTestFastingService()

	otherUsersGoal := &domain.FastingGoal{UserID: 2, GoalDuration: 16, Deadline: testNow.AddDate(0, 1, 0)}
	require.NoError(t, goals.Create(ctx, otherUsersGoal))

	_, err := svc.Start(ctx, 1, testNow, nil)
	require.NoError(t, err)

	err = svc.LinkGoal(ctx, 1, otherUsersGoal.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// starting with a foreign goal is rejected before any write
	_, err = svc.Start(ctx, 3, testNow, &otherUsersGoal.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
