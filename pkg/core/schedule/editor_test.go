package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaufield/devportal/pkg/core/dates"
	"github.com/ncaufield/devportal/pkg/core/model"
)

func onDuty(id, start, end, assignee, notes string) model.OnDutyShift {
	return model.OnDutyShift{
		Shift: model.Shift{ID: id, Start: start, End: end, AssigneeID: assignee},
		Notes: notes,
	}
}

func sampleList() []model.OnDutyShift {
	return []model.OnDutyShift{
		onDuty("od_1", "2025-01-01", "2025-01-03", "m1", ""),
		onDuty("od_2", "2025-01-03", "2025-01-07", "m2", "handover at standup"),
		onDuty("od_3", "2025-01-07", "2025-01-08", "m3", ""),
	}
}

func TestUpdate_PatchesOnlyMatchingShift(t *testing.T) {
	list := sampleList()
	notes := "x"
	patch := OnDutyPatch{Notes: &notes}

	updated := Update(list, "od_2", patch.Apply)

	require.Len(t, updated, 3)
	assert.Equal(t, "x", updated[1].Notes)

	// Only the notes field changed; everything else is untouched
	assert.Equal(t, list[1].Shift, updated[1].Shift)
	assert.Equal(t, list[0], updated[0])
	assert.Equal(t, list[2], updated[2])

	// Idempotent when applied twice with the same payload
	again := Update(updated, "od_2", patch.Apply)
	assert.Equal(t, updated, again)
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	list := sampleList()
	notes := "x"
	updated := Update(list, "missing", OnDutyPatch{Notes: &notes}.Apply)
	assert.Equal(t, list, updated)
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	list := sampleList()
	notes := "x"
	_ = Update(list, "od_1", OnDutyPatch{Notes: &notes}.Apply)
	assert.Equal(t, sampleList(), list)
}

func TestAdd_AppendsTodayToTomorrow(t *testing.T) {
	list := Add(nil, func(id, start, end string) model.OnDutyShift {
		return onDuty(id, start, end, "m1", "")
	})

	require.Len(t, list, 1)
	today := dates.ToISODate(time.Now())
	assert.Equal(t, today, list[0].Start)
	assert.Equal(t, dates.NextDay(today), list[0].End)
	assert.Equal(t, "m1", list[0].AssigneeID)
	assert.NotEmpty(t, list[0].ID)
}

func TestAddAfter(t *testing.T) {
	list := sampleList()
	updated := AddAfter(list, "od_1")

	require.Len(t, updated, 4)

	// Positioned immediately after the reference shift
	assert.Equal(t, "od_1", updated[0].ID)
	fresh := updated[1]
	assert.Equal(t, "od_2", updated[2].ID)
	assert.Equal(t, "od_3", updated[3].ID)

	// New shift starts where the reference ends and runs one day
	assert.Equal(t, "2025-01-03", fresh.Start)
	assert.Equal(t, "2025-01-04", fresh.End)

	// Other fields are copied from the reference
	assert.Equal(t, "m1", fresh.AssigneeID)
	assert.NotEqual(t, "od_1", fresh.ID)
}

func TestAddAfter_UnknownIDIsNoOp(t *testing.T) {
	list := sampleList()
	assert.Equal(t, list, AddAfter(list, "missing"))
}

func TestSplit(t *testing.T) {
	list := []model.OnDutyShift{
		onDuty("od_1", "2025-01-01", "2025-01-03", "m1", ""),
	}

	updated := Split(list, "od_1")

	require.Len(t, updated, 2)
	assert.Equal(t, onDuty("od_1_a", "2025-01-01", "2025-01-02", "m1", ""), updated[0])
	assert.Equal(t, onDuty("od_1_b", "2025-01-02", "2025-01-03", "m1", ""), updated[1])
}

func TestSplit_PreservesNeighbours(t *testing.T) {
	list := sampleList()
	updated := Split(list, "od_2")

	require.Len(t, updated, len(list)+1)

	// Original id is gone, neighbours unchanged and in order
	assert.Equal(t, list[0], updated[0])
	assert.Equal(t, "od_2_a", updated[1].ID)
	assert.Equal(t, "od_2_b", updated[2].ID)
	assert.Equal(t, list[2], updated[3])
	assert.Equal(t, -1, indexOf(updated, "od_2"))

	// Halves partition the original range and keep the other fields
	assert.Equal(t, "2025-01-03", updated[1].Start)
	assert.Equal(t, updated[1].End, updated[2].Start)
	assert.Equal(t, "2025-01-07", updated[2].End)
	assert.Equal(t, "m2", updated[1].AssigneeID)
	assert.Equal(t, "handover at standup", updated[2].Notes)
}

func TestSplit_SingleDayIsNoOp(t *testing.T) {
	list := []model.OnDutyShift{
		onDuty("od_1", "2025-01-01", "2025-01-02", "m1", ""),
	}
	assert.Equal(t, list, Split(list, "od_1"))
}

func TestSplit_UnknownIDIsNoOp(t *testing.T) {
	list := sampleList()
	assert.Equal(t, list, Split(list, "missing"))
}

func TestDelete(t *testing.T) {
	list := sampleList()
	updated := Delete(list, "od_2")

	require.Len(t, updated, 2)
	assert.Equal(t, -1, indexOf(updated, "od_2"))
	assert.Equal(t, list[0], updated[0])
	assert.Equal(t, list[2], updated[1])
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	list := sampleList()
	assert.Equal(t, list, Delete(list, "missing"))
}

func TestOnCallTrackSharesMechanics(t *testing.T) {
	list := []model.OnCallShift{
		{Shift: model.Shift{ID: "oc_1", Start: "2025-02-01", End: "2025-02-05", AssigneeID: "m2"}, Escalation: "m1"},
	}

	updated := Split(list, "oc_1")
	require.Len(t, updated, 2)
	assert.Equal(t, "oc_1_a", updated[0].ID)
	assert.Equal(t, "m1", updated[0].Escalation)
	assert.Equal(t, "2025-02-03", updated[0].End)
	assert.Equal(t, "2025-02-03", updated[1].Start)
}
