package sheetsclient

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ncaufield/devportal/pkg/core/dates"
	"github.com/ncaufield/devportal/pkg/core/model"
)

// PublishOnDuty writes the on-duty schedule for a year to its tab in the
// shared spreadsheet, replacing whatever was published before
func (c *Client) PublishOnDuty(logger *zap.Logger, spreadsheetID string, year int, shifts []model.OnDutyShift, members []model.Member) error {
	header := []interface{}{"Start", "End", "Days", "Assignee", "Notes"}
	rows := make([][]interface{}, 0, len(shifts))
	for _, s := range shifts {
		rows = append(rows, shiftRow(s.Shift, members, s.Notes))
	}

	return c.publish(logger, spreadsheetID, fmt.Sprintf("On Duty %d", year), header, rows)
}

// PublishOnCall writes the on-call schedule for a year to its tab in the
// shared spreadsheet, replacing whatever was published before
func (c *Client) PublishOnCall(logger *zap.Logger, spreadsheetID string, year int, shifts []model.OnCallShift, members []model.Member) error {
	header := []interface{}{"Start", "End", "Days", "Assignee", "Escalation"}
	rows := make([][]interface{}, 0, len(shifts))
	for _, s := range shifts {
		rows = append(rows, shiftRow(s.Shift, members, memberName(members, s.Escalation)))
	}

	return c.publish(logger, spreadsheetID, fmt.Sprintf("On Call %d", year), header, rows)
}

func (c *Client) publish(logger *zap.Logger, spreadsheetID, tab string, header []interface{}, rows [][]interface{}) error {
	logger.Info("Publishing schedule",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("tab", tab),
		zap.Int("row_count", len(rows)))

	if err := c.EnsureSheet(spreadsheetID, tab); err != nil {
		return err
	}

	// Clear first so a shorter schedule leaves no stale rows behind
	if err := c.ClearValues(spreadsheetID, tab); err != nil {
		return err
	}

	values := append([][]interface{}{header}, rows...)
	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("%s!A1", tab), values); err != nil {
		return err
	}

	logger.Info("Schedule published", zap.String("tab", tab))
	return nil
}

func shiftRow(s model.Shift, members []model.Member, extra string) []interface{} {
	return []interface{}{
		s.Start,
		s.End,
		strconv.Itoa(dates.DaysBetween(s.Start, s.End)),
		memberName(members, s.AssigneeID),
		extra,
	}
}

func memberName(members []model.Member, id string) string {
	for _, m := range members {
		if m.ID == id {
			return m.FullName
		}
	}
	return id
}
