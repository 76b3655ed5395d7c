package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerStates(t *testing.T) {
	m := NewManager()

	assert.Equal(t, None, m.GetUserState(1))

	m.SetUserState(1, WaitingForGoalDuration)
	assert.Equal(t, WaitingForGoalDuration, m.GetUserState(1))
	assert.Equal(t, None, m.GetUserState(2))

	m.ClearUserState(1)
	assert.Equal(t, None, m.GetUserState(1))
}

func TestManagerTempData(t *testing.T) {
	m := NewManager()

	_, ok := m.GetTempData(1, "goal_duration")
	assert.False(t, ok)

	m.SetTempData(1, "goal_duration", "16")
	value, ok := m.GetTempData(1, "goal_duration")
	assert.True(t, ok)
	assert.Equal(t, "16", value)

	m.ClearTempData(1)
	_, ok = m.GetTempData(1, "goal_duration")
	assert.False(t, ok)
}
