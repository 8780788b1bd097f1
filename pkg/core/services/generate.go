package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/ncaufield/devportal/pkg/core/dates"
	"github.com/ncaufield/devportal/pkg/core/model"
	"github.com/ncaufield/devportal/pkg/core/schedule"
)

// GenerateOnDuty builds a year's on-duty shift list from a recurrence
// rule. Each recurrence starts a shift that runs until the next one;
// assignees rotate through the roster in order.
func GenerateOnDuty(logger *zap.Logger, ruleStr string, members []model.Member, year int) ([]model.OnDutyShift, error) {
	spans, assignees, err := generateSpans(logger, ruleStr, members, year)
	if err != nil {
		return nil, err
	}

	shifts := make([]model.OnDutyShift, len(spans))
	for i, span := range spans {
		shifts[i] = model.OnDutyShift{
			Shift: model.Shift{
				ID:         fmt.Sprintf("%s_%d", schedule.NewShiftID(), i),
				Start:      span.Start,
				End:        span.End,
				AssigneeID: assignees[i],
			},
		}
	}
	return shifts, nil
}

// GenerateOnCall builds a year's on-call shift list the same way
func GenerateOnCall(logger *zap.Logger, ruleStr string, members []model.Member, year int) ([]model.OnCallShift, error) {
	spans, assignees, err := generateSpans(logger, ruleStr, members, year)
	if err != nil {
		return nil, err
	}

	shifts := make([]model.OnCallShift, len(spans))
	for i, span := range spans {
		shifts[i] = model.OnCallShift{
			Shift: model.Shift{
				ID:         fmt.Sprintf("%s_%d", schedule.NewShiftID(), i),
				Start:      span.Start,
				End:        span.End,
				AssigneeID: assignees[i],
			},
		}
	}
	return shifts, nil
}

// generateSpans expands the recurrence rule across the target year and
// pairs each span with a round-robin assignee. The final span closes at
// the first recurrence of the following year, or at the start of the
// following year when the rule yields none.
func generateSpans(logger *zap.Logger, ruleStr string, members []model.Member, year int) ([]dates.Range, []string, error) {
	if len(members) == 0 {
		return nil, nil, fmt.Errorf("cannot generate a schedule with an empty roster")
	}

	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}

	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	nextYearStart := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)
	rule.DTStart(yearStart)

	occurrences := rule.Between(yearStart, nextYearStart.AddDate(0, 0, -1), true)
	if len(occurrences) == 0 {
		return nil, nil, fmt.Errorf("recurrence rule yields no shifts in %d", year)
	}

	logger.Info("Generating schedule",
		zap.Int("year", year),
		zap.Int("shift_count", len(occurrences)),
		zap.Int("roster_size", len(members)))

	spans := make([]dates.Range, len(occurrences))
	assignees := make([]string, len(occurrences))
	for i, occ := range occurrences {
		var end time.Time
		if i+1 < len(occurrences) {
			end = occurrences[i+1]
		} else {
			end = rule.After(occ, false)
			if end.IsZero() {
				end = nextYearStart
			}
		}

		spans[i] = dates.Range{Start: dates.ToISODate(occ), End: dates.ToISODate(end)}
		assignees[i] = members[i%len(members)].ID
	}

	return spans, assignees, nil
}
