// Package excel converts shift lists to and from spreadsheet files.
// Every column the portal displays round-trips losslessly; shift ids
// are regenerated on import.
package excel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ncaufield/devportal/pkg/core/dates"
	"github.com/ncaufield/devportal/pkg/core/model"
)

// SheetName is the tab both export and import use
const SheetName = "Schedule"

// Column headers. "Assignee" carries the member's display name for
// readers of the file; "Assignee ID" is what import keys on.
const (
	colStart      = "Start"
	colEnd        = "End"
	colDays       = "Days"
	colAssigneeID = "Assignee ID"
	colAssignee   = "Assignee"
	colNotes      = "Notes"
	colEscalation = "Escalation"
)

// ExportOnDuty renders an on-duty shift list as a workbook
func ExportOnDuty(shifts []model.OnDutyShift, members []model.Member) (*excelize.File, error) {
	header := []interface{}{colStart, colEnd, colDays, colAssigneeID, colAssignee, colNotes}
	return export(header, len(shifts), members, func(i int) (model.Shift, string) {
		return shifts[i].Shift, shifts[i].Notes
	})
}

// ExportOnCall renders an on-call shift list as a workbook
func ExportOnCall(shifts []model.OnCallShift, members []model.Member) (*excelize.File, error) {
	header := []interface{}{colStart, colEnd, colDays, colAssigneeID, colAssignee, colEscalation}
	return export(header, len(shifts), members, func(i int) (model.Shift, string) {
		return shifts[i].Shift, shifts[i].Escalation
	})
}

func export(header []interface{}, count int, members []model.Member, row func(i int) (model.Shift, string)) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	namesByID := make(map[string]string, len(members))
	for _, m := range members {
		namesByID[m.ID] = m.FullName
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < count; i++ {
		shift, extra := row(i)
		cells := []interface{}{
			shift.Start,
			shift.End,
			dates.DaysBetween(shift.Start, shift.End),
			shift.AssigneeID,
			namesByID[shift.AssigneeID],
			extra,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// Write serialises a workbook to w
func Write(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ImportOnDuty parses an uploaded workbook back into an on-duty shift
// list. Any malformed row fails the whole import and returns no shifts,
// so the caller's existing list stays untouched.
func ImportOnDuty(r io.Reader) ([]model.OnDutyShift, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	parsed, err := parseRows(rows, colNotes)
	if err != nil {
		return nil, err
	}

	shifts := make([]model.OnDutyShift, len(parsed))
	for i, p := range parsed {
		shifts[i] = model.OnDutyShift{Shift: p.shift, Notes: p.extra}
	}
	return shifts, nil
}

// ImportOnCall parses an uploaded workbook back into an on-call shift list
func ImportOnCall(r io.Reader) ([]model.OnCallShift, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	parsed, err := parseRows(rows, colEscalation)
	if err != nil {
		return nil, err
	}

	shifts := make([]model.OnCallShift, len(parsed))
	for i, p := range parsed {
		shifts[i] = model.OnCallShift{Shift: p.shift, Escalation: p.extra}
	}
	return shifts, nil
}

func readRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		// Fall back to the first sheet for files produced elsewhere
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		rows, err = f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet: %w", err)
		}
	}

	if len(rows) < 1 {
		return nil, fmt.Errorf("workbook has no header row")
	}
	return rows, nil
}

type parsedRow struct {
	shift model.Shift
	extra string
}

// parseRows converts raw sheet rows into shifts, keyed by header names
// so column order in the file does not matter.
func parseRows(rows [][]string, extraCol string) ([]parsedRow, error) {
	indexes := make(map[string]int)
	for i, name := range rows[0] {
		indexes[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colStart, colEnd, colAssigneeID} {
		if _, ok := indexes[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := indexes[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	ts := time.Now().UnixNano()
	parsed := make([]parsedRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		start := field(row, colStart)
		end := field(row, colEnd)

		// Skip fully empty trailing rows
		if start == "" && end == "" && field(row, colAssigneeID) == "" {
			continue
		}

		for _, d := range []string{start, end} {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return nil, fmt.Errorf("row %d: invalid date %q (expected 2006-01-02)", i+2, d)
			}
		}

		parsed = append(parsed, parsedRow{
			shift: model.Shift{
				ID:         fmt.Sprintf("shift_%d_%d", ts, i),
				Start:      start,
				End:        end,
				AssigneeID: field(row, colAssigneeID),
			},
			extra: field(row, extraCol),
		})
	}

	return parsed, nil
}
