package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaufield/devportal/pkg/core/model"
)

func testMembers() []model.Member {
	return []model.Member{
		{ID: "m1", FullName: "Ada Park", Role: "engineer", Team: "core"},
		{ID: "m2", FullName: "Ben Osei", Role: "engineer", Team: "core"},
	}
}

func TestBoard_ToggleIsSideEffectFree(t *testing.T) {
	b := NewBoard([]int{2024, 2025}, testMembers())
	b.OnDuty = sampleList()

	assert.Equal(t, model.TrackOnDuty, b.Mode)

	b.Toggle()
	assert.Equal(t, model.TrackOnCall, b.Mode)
	assert.Equal(t, sampleList(), b.OnDuty)
	assert.False(t, b.CanUndo())

	b.Toggle()
	assert.Equal(t, model.TrackOnDuty, b.Mode)
}

func TestBoard_SelectYear(t *testing.T) {
	b := NewBoard([]int{2024, 2025, 2026}, nil)
	assert.Equal(t, 2024, b.Year)

	require.NoError(t, b.SelectYear(2026))
	assert.Equal(t, 2026, b.Year)

	err := b.SelectYear(1999)
	assert.Error(t, err)
	assert.Equal(t, 2026, b.Year)
}

func TestBoard_AddOnDutyAssignsFirstMember(t *testing.T) {
	b := NewBoard([]int{2025}, testMembers())

	b.AddOnDuty()

	require.Len(t, b.OnDuty, 1)
	assert.Equal(t, "m1", b.OnDuty[0].AssigneeID)
}

func TestBoard_AddWithEmptyRoster(t *testing.T) {
	b := NewBoard([]int{2025}, nil)

	b.AddOnCall()

	require.Len(t, b.OnCall, 1)
	assert.Empty(t, b.OnCall[0].AssigneeID)
}

func TestBoard_Undo(t *testing.T) {
	b := NewBoard([]int{2025}, testMembers())
	b.OnDuty = sampleList()

	assert.False(t, b.Undo(), "nothing to undo on a fresh board")

	b.DeleteOnDuty("od_1")
	require.Len(t, b.OnDuty, 2)

	b.SplitOnDuty("od_2")
	require.Len(t, b.OnDuty, 3)

	// Undo restores one edit at a time
	assert.True(t, b.Undo())
	assert.Len(t, b.OnDuty, 2)

	assert.True(t, b.Undo())
	assert.Equal(t, sampleList(), b.OnDuty)

	assert.False(t, b.Undo())
}

func TestBoard_UndoRestoresBothTracks(t *testing.T) {
	b := NewBoard([]int{2025}, testMembers())
	b.OnDuty = sampleList()

	b.AddOnCall()
	require.Len(t, b.OnCall, 1)

	assert.True(t, b.Undo())
	assert.Empty(t, b.OnCall)
	assert.Equal(t, sampleList(), b.OnDuty)
}

func TestBoard_UpdateOnCall(t *testing.T) {
	b := NewBoard([]int{2025}, testMembers())
	b.OnCall = []model.OnCallShift{
		{Shift: model.Shift{ID: "oc_1", Start: "2025-03-01", End: "2025-03-08", AssigneeID: "m1"}},
	}

	esc := "m2"
	b.UpdateOnCall("oc_1", OnCallPatch{Escalation: &esc})

	assert.Equal(t, "m2", b.OnCall[0].Escalation)
	assert.Equal(t, "m1", b.OnCall[0].AssigneeID)
}
