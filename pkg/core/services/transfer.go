package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ncaufield/devportal/pkg/core/model"
	"github.com/ncaufield/devportal/pkg/core/schedule"
	"github.com/ncaufield/devportal/pkg/db"
	"github.com/ncaufield/devportal/pkg/excel"
)

// ImportSchedule parses an uploaded workbook and replaces the stored
// list for the given track and year. A failed parse persists nothing,
// so the stored list is never partially imported.
func ImportSchedule(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, track model.Track, year int, r io.Reader) (int, error) {
	logger.Info("Importing schedule", zap.String("track", string(track)), zap.Int("year", year))

	switch track {
	case model.TrackOnDuty:
		shifts, err := excel.ImportOnDuty(r)
		if err != nil {
			return 0, fmt.Errorf("failed to import on-duty schedule: %w", err)
		}
		if err := store.ReplaceOnDutyShifts(ctx, year, shifts); err != nil {
			return 0, fmt.Errorf("failed to store on-duty schedule: %w", err)
		}
		logger.Info("Schedule imported", zap.Int("shift_count", len(shifts)))
		return len(shifts), nil

	case model.TrackOnCall:
		shifts, err := excel.ImportOnCall(r)
		if err != nil {
			return 0, fmt.Errorf("failed to import on-call schedule: %w", err)
		}
		if err := store.ReplaceOnCallShifts(ctx, year, shifts); err != nil {
			return 0, fmt.Errorf("failed to store on-call schedule: %w", err)
		}
		logger.Info("Schedule imported", zap.Int("shift_count", len(shifts)))
		return len(shifts), nil

	default:
		return 0, fmt.Errorf("unknown track: %s", track)
	}
}

// ExportSchedule writes the stored list for a track and year as a
// workbook to w.
func ExportSchedule(ctx context.Context, store db.ScheduleStore, roster db.MemberStore, logger *zap.Logger, track model.Track, year int, w io.Writer) error {
	logger.Info("Exporting schedule", zap.String("track", string(track)), zap.Int("year", year))

	members, err := roster.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch roster: %w", err)
	}

	switch track {
	case model.TrackOnDuty:
		shifts, err := store.GetOnDutyShifts(ctx, year)
		if err != nil {
			return fmt.Errorf("failed to load on-duty schedule: %w", err)
		}
		f, err := excel.ExportOnDuty(shifts, members)
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
		return excel.Write(f, w)

	case model.TrackOnCall:
		shifts, err := store.GetOnCallShifts(ctx, year)
		if err != nil {
			return fmt.Errorf("failed to load on-call schedule: %w", err)
		}
		f, err := excel.ExportOnCall(shifts, members)
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
		return excel.Write(f, w)

	default:
		return fmt.Errorf("unknown track: %s", track)
	}
}

// LoadBoard assembles an editing board from the stored lists and roster
func LoadBoard(ctx context.Context, store db.ScheduleStore, roster db.MemberStore, logger *zap.Logger, years []int, year int) (*schedule.Board, error) {
	members, err := roster.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	board := schedule.NewBoard(years, members)
	if err := board.SelectYear(year); err != nil {
		return nil, err
	}

	board.OnDuty, err = store.GetOnDutyShifts(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load on-duty schedule: %w", err)
	}
	board.OnCall, err = store.GetOnCallShifts(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load on-call schedule: %w", err)
	}

	logger.Debug("Board loaded",
		zap.Int("year", year),
		zap.Int("on_duty", len(board.OnDuty)),
		zap.Int("on_call", len(board.OnCall)))

	return board, nil
}

// SaveBoard persists both of the board's lists for its selected year
func SaveBoard(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, board *schedule.Board) error {
	if err := store.ReplaceOnDutyShifts(ctx, board.Year, board.OnDuty); err != nil {
		return fmt.Errorf("failed to save on-duty schedule: %w", err)
	}
	if err := store.ReplaceOnCallShifts(ctx, board.Year, board.OnCall); err != nil {
		return fmt.Errorf("failed to save on-call schedule: %w", err)
	}

	logger.Info("Board saved",
		zap.Int("year", board.Year),
		zap.Int("on_duty", len(board.OnDuty)),
		zap.Int("on_call", len(board.OnCall)))
	return nil
}
