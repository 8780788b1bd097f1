package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ncaufield/devportal/pkg/core/model"
)

var members = []model.Member{
	{ID: "m1", FullName: "Ada Park", Role: "engineer", Team: "core"},
	{ID: "m2", FullName: "Ben Osei", Role: "lead", Team: "core"},
}

func TestRoundTrip_OnDuty(t *testing.T) {
	shifts := []model.OnDutyShift{
		{Shift: model.Shift{ID: "od_1", Start: "2025-01-01", End: "2025-01-03", AssigneeID: "m1"}, Notes: "release week"},
		{Shift: model.Shift{ID: "od_2", Start: "2025-01-03", End: "2025-01-10", AssigneeID: "m2"}},
	}

	f, err := ExportOnDuty(shifts, members)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(f, &buf))

	imported, err := ImportOnDuty(&buf)
	require.NoError(t, err)
	require.Len(t, imported, len(shifts))

	for i := range shifts {
		// Ids are regenerated; everything else round-trips
		assert.NotEmpty(t, imported[i].ID)
		assert.NotEqual(t, shifts[i].ID, imported[i].ID)
		assert.Equal(t, shifts[i].Start, imported[i].Start)
		assert.Equal(t, shifts[i].End, imported[i].End)
		assert.Equal(t, shifts[i].AssigneeID, imported[i].AssigneeID)
		assert.Equal(t, shifts[i].Notes, imported[i].Notes)
	}

	// Regenerated ids stay unique within the import
	assert.NotEqual(t, imported[0].ID, imported[1].ID)
}

func TestRoundTrip_OnCall(t *testing.T) {
	shifts := []model.OnCallShift{
		{Shift: model.Shift{ID: "oc_1", Start: "2025-02-01", End: "2025-02-08", AssigneeID: "m2"}, Escalation: "m1"},
	}

	f, err := ExportOnCall(shifts, members)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(f, &buf))

	imported, err := ImportOnCall(&buf)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "2025-02-01", imported[0].Start)
	assert.Equal(t, "m1", imported[0].Escalation)
}

func TestExport_WritesDisplayColumns(t *testing.T) {
	shifts := []model.OnDutyShift{
		{Shift: model.Shift{ID: "od_1", Start: "2025-01-01", End: "2025-01-04", AssigneeID: "m1"}},
	}

	f, err := ExportOnDuty(shifts, members)
	require.NoError(t, err)

	days, err := f.GetCellValue(SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "3", days)

	name, err := f.GetCellValue(SheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Park", name)
}

func TestImport_EmptyList(t *testing.T) {
	f, err := ExportOnDuty(nil, members)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(f, &buf))

	imported, err := ImportOnDuty(&buf)
	require.NoError(t, err)
	assert.Empty(t, imported)
}

func TestImport_MalformedDateFailsWholeImport(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetName))
	header := []interface{}{"Start", "End", "Assignee ID"}
	require.NoError(t, f.SetSheetRow(SheetName, "A1", &header))
	good := []interface{}{"2025-01-01", "2025-01-02", "m1"}
	require.NoError(t, f.SetSheetRow(SheetName, "A2", &good))
	bad := []interface{}{"01/05/2025", "2025-01-06", "m1"}
	require.NoError(t, f.SetSheetRow(SheetName, "A3", &bad))

	var buf bytes.Buffer
	require.NoError(t, Write(f, &buf))

	imported, err := ImportOnDuty(&buf)
	assert.Error(t, err)
	assert.Nil(t, imported)
	assert.Contains(t, err.Error(), "row 3")
}

func TestImport_MissingColumn(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetName))
	header := []interface{}{"Start", "End"}
	require.NoError(t, f.SetSheetRow(SheetName, "A1", &header))

	var buf bytes.Buffer
	require.NoError(t, Write(f, &buf))

	_, err := ImportOnDuty(&buf)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Assignee ID")
}

func TestImport_NotASpreadsheet(t *testing.T) {
	_, err := ImportOnDuty(strings.NewReader("definitely not a zip archive"))
	assert.Error(t, err)
}

func TestImport_FallsBackToFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	// Leave the default sheet name so GetRows("Schedule") misses
	header := []interface{}{"Start", "End", "Assignee ID", "Notes"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	row := []interface{}{"2025-03-01", "2025-03-02", "m2", "imported"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))

	var buf bytes.Buffer
	require.NoError(t, Write(f, &buf))

	imported, err := ImportOnDuty(&buf)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "imported", imported[0].Notes)
}
