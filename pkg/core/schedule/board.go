package schedule

import (
	"fmt"

	"github.com/ncaufield/devportal/pkg/core/model"
)

// ShiftPatch holds the partial fields shared by both shift kinds.
// Nil fields are left untouched.
type ShiftPatch struct {
	Start      *string
	End        *string
	AssigneeID *string
}

func (p ShiftPatch) apply(s model.Shift) model.Shift {
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.End != nil {
		s.End = *p.End
	}
	if p.AssigneeID != nil {
		s.AssigneeID = *p.AssigneeID
	}
	return s
}

// OnDutyPatch is a partial update of an on-duty shift
type OnDutyPatch struct {
	ShiftPatch
	Notes *string
}

func (p OnDutyPatch) Apply(s model.OnDutyShift) model.OnDutyShift {
	s.Shift = p.ShiftPatch.apply(s.Shift)
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s
}

// OnCallPatch is a partial update of an on-call shift
type OnCallPatch struct {
	ShiftPatch
	Escalation *string
}

func (p OnCallPatch) Apply(s model.OnCallShift) model.OnCallShift {
	s.Shift = p.ShiftPatch.apply(s.Shift)
	if p.Escalation != nil {
		s.Escalation = *p.Escalation
	}
	return s
}

// snapshot captures both lists so an edit can be undone as a unit
type snapshot struct {
	onDuty []model.OnDutyShift
	onCall []model.OnCallShift
}

// Board composes the two scheduling tracks, the active view mode, the
// selected year and the undo history. All edits replace the whole list
// for the affected track; untouched shifts keep order and identity.
// A Board is driven from a single control flow and is not safe for
// concurrent use.
type Board struct {
	Years []int
	Year  int
	Mode  model.Track

	OnDuty []model.OnDutyShift
	OnCall []model.OnCallShift

	members []model.Member
	history []snapshot
}

// NewBoard creates a board over the given selectable years, starting on
// the on-duty track with the first year selected.
func NewBoard(years []int, members []model.Member) *Board {
	b := &Board{
		Years:   years,
		Mode:    model.TrackOnDuty,
		members: members,
	}
	if len(years) > 0 {
		b.Year = years[0]
	}
	return b
}

// Toggle switches between the on-duty and on-call views. It has no side
// effect beyond which list is rendered.
func (b *Board) Toggle() {
	if b.Mode == model.TrackOnDuty {
		b.Mode = model.TrackOnCall
	} else {
		b.Mode = model.TrackOnDuty
	}
}

// SelectYear switches the active year; years outside the selectable set
// are rejected.
func (b *Board) SelectYear(year int) error {
	for _, y := range b.Years {
		if y == year {
			b.Year = year
			return nil
		}
	}
	return fmt.Errorf("year %d is not selectable", year)
}

// defaultAssignee returns the first roster member's id, or empty when
// the roster has not loaded.
func (b *Board) defaultAssignee() string {
	if len(b.members) == 0 {
		return ""
	}
	return b.members[0].ID
}

func (b *Board) pushHistory() {
	b.history = append(b.history, snapshot{onDuty: b.OnDuty, onCall: b.OnCall})
}

// Undo restores the lists as they were before the most recent edit.
// It reports whether there was anything to undo.
func (b *Board) Undo() bool {
	if len(b.history) == 0 {
		return false
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.OnDuty = last.onDuty
	b.OnCall = last.onCall
	return true
}

// CanUndo reports whether the undo history is non-empty
func (b *Board) CanUndo() bool {
	return len(b.history) > 0
}

// On-duty track operations. Each computes a new list and replaces the
// board's copy, recording the previous state for undo.

func (b *Board) UpdateOnDuty(id string, patch OnDutyPatch) {
	b.pushHistory()
	b.OnDuty = Update(b.OnDuty, id, patch.Apply)
}

func (b *Board) AddOnDuty() {
	b.pushHistory()
	assignee := b.defaultAssignee()
	b.OnDuty = Add(b.OnDuty, func(id, start, end string) model.OnDutyShift {
		return model.OnDutyShift{Shift: model.Shift{ID: id, Start: start, End: end, AssigneeID: assignee}}
	})
}

func (b *Board) AddOnDutyAfter(id string) {
	b.pushHistory()
	b.OnDuty = AddAfter(b.OnDuty, id)
}

func (b *Board) SplitOnDuty(id string) {
	b.pushHistory()
	b.OnDuty = Split(b.OnDuty, id)
}

func (b *Board) DeleteOnDuty(id string) {
	b.pushHistory()
	b.OnDuty = Delete(b.OnDuty, id)
}

// On-call track operations, same mechanics over the other list.

func (b *Board) UpdateOnCall(id string, patch OnCallPatch) {
	b.pushHistory()
	b.OnCall = Update(b.OnCall, id, patch.Apply)
}

func (b *Board) AddOnCall() {
	b.pushHistory()
	assignee := b.defaultAssignee()
	b.OnCall = Add(b.OnCall, func(id, start, end string) model.OnCallShift {
		return model.OnCallShift{Shift: model.Shift{ID: id, Start: start, End: end, AssigneeID: assignee}}
	})
}

func (b *Board) AddOnCallAfter(id string) {
	b.pushHistory()
	b.OnCall = AddAfter(b.OnCall, id)
}

func (b *Board) SplitOnCall(id string) {
	b.pushHistory()
	b.OnCall = Split(b.OnCall, id)
}

func (b *Board) DeleteOnCall(id string) {
	b.pushHistory()
	b.OnCall = Delete(b.OnCall, id)
}
