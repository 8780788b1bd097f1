package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ncaufield/devportal/pkg/core/model"
)

type shiftRow struct {
	shift model.Shift
	extra string
}

// GetOnDutyShifts retrieves the on-duty list for a year in stored order
func (d *DB) GetOnDutyShifts(ctx context.Context, year int) ([]model.OnDutyShift, error) {
	rows, err := d.getShiftRows(ctx, model.TrackOnDuty, year)
	if err != nil {
		return nil, err
	}

	shifts := make([]model.OnDutyShift, len(rows))
	for i, r := range rows {
		shifts[i] = model.OnDutyShift{Shift: r.shift, Notes: r.extra}
	}
	return shifts, nil
}

// GetOnCallShifts retrieves the on-call list for a year in stored order
func (d *DB) GetOnCallShifts(ctx context.Context, year int) ([]model.OnCallShift, error) {
	rows, err := d.getShiftRows(ctx, model.TrackOnCall, year)
	if err != nil {
		return nil, err
	}

	shifts := make([]model.OnCallShift, len(rows))
	for i, r := range rows {
		shifts[i] = model.OnCallShift{Shift: r.shift, Escalation: r.extra}
	}
	return shifts, nil
}

func (d *DB) getShiftRows(ctx context.Context, track model.Track, year int) ([]shiftRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, start_date, end_date, assignee_id, extra
		FROM shifts
		WHERE track = $1 AND year = $2
		ORDER BY position
	`, string(track), year)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var result []shiftRow
	for rows.Next() {
		var r shiftRow
		var start, end time.Time
		if err := rows.Scan(&r.shift.ID, &start, &end, &r.shift.AssigneeID, &r.extra); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		r.shift.Start = start.Format("2006-01-02")
		r.shift.End = end.Format("2006-01-02")
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return result, nil
}

// ReplaceOnDutyShifts stores a whole on-duty list for a year in one
// transaction, replacing whatever was stored before
func (d *DB) ReplaceOnDutyShifts(ctx context.Context, year int, shifts []model.OnDutyShift) error {
	rows := make([]shiftRow, len(shifts))
	for i, s := range shifts {
		rows[i] = shiftRow{shift: s.Shift, extra: s.Notes}
	}
	return d.replaceShiftRows(ctx, model.TrackOnDuty, year, rows)
}

// ReplaceOnCallShifts stores a whole on-call list for a year in one
// transaction, replacing whatever was stored before
func (d *DB) ReplaceOnCallShifts(ctx context.Context, year int, shifts []model.OnCallShift) error {
	rows := make([]shiftRow, len(shifts))
	for i, s := range shifts {
		rows[i] = shiftRow{shift: s.Shift, extra: s.Escalation}
	}
	return d.replaceShiftRows(ctx, model.TrackOnCall, year, rows)
}

func (d *DB) replaceShiftRows(ctx context.Context, track model.Track, year int, rows []shiftRow) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM shifts WHERE track = $1 AND year = $2`, string(track), year)
	if err != nil {
		return fmt.Errorf("failed to clear shifts: %w", err)
	}

	for i, r := range rows {
		_, err = tx.Exec(ctx, `
			INSERT INTO shifts (track, year, position, id, start_date, end_date, assignee_id, extra)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, string(track), year, i, r.shift.ID, r.shift.Start, r.shift.End, r.shift.AssigneeID, r.extra)
		if err != nil {
			return fmt.Errorf("failed to insert shift %s: %w", r.shift.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shift replacement: %w", err)
	}
	return nil
}
