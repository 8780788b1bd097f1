package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ncaufield/devportal/pkg/core/model"
)

func roster() []model.Member {
	return []model.Member{
		{ID: "m1", FullName: "Ada Park"},
		{ID: "m2", FullName: "Ben Osei"},
		{ID: "m3", FullName: "Cleo Brandt"},
	}
}

func TestGenerateOnDuty_WeeklyRotation(t *testing.T) {
	logger := zap.NewNop()

	shifts, err := GenerateOnDuty(logger, "FREQ=WEEKLY;BYDAY=MO", roster(), 2025)
	require.NoError(t, err)
	require.NotEmpty(t, shifts)

	// First Monday of 2025
	assert.Equal(t, "2025-01-06", shifts[0].Start)

	// Shifts are contiguous: each ends where the next begins
	for i := 0; i < len(shifts)-1; i++ {
		assert.Equal(t, shifts[i].End, shifts[i+1].Start, "shift %d must adjoin its successor", i)
	}

	// The final shift closes at the first recurrence of the next year
	assert.Equal(t, "2026-01-05", shifts[len(shifts)-1].End)

	// Assignees rotate through the roster in order
	for i, s := range shifts {
		assert.Equal(t, roster()[i%3].ID, s.AssigneeID, "shift %d assignee", i)
	}

	// Generated ids are unique
	seen := make(map[string]bool)
	for _, s := range shifts {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestGenerateOnCall_SharesMechanics(t *testing.T) {
	shifts, err := GenerateOnCall(zap.NewNop(), "FREQ=WEEKLY;BYDAY=FR", roster(), 2025)
	require.NoError(t, err)
	require.NotEmpty(t, shifts)
	assert.Equal(t, "2025-01-03", shifts[0].Start)
	assert.Equal(t, "m1", shifts[0].AssigneeID)
}

func TestGenerate_InvalidRule(t *testing.T) {
	_, err := GenerateOnDuty(zap.NewNop(), "FREQ=SOMETIMES", roster(), 2025)
	assert.Error(t, err)
}

func TestGenerate_EmptyRoster(t *testing.T) {
	_, err := GenerateOnDuty(zap.NewNop(), "FREQ=WEEKLY", nil, 2025)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty roster")
}
