package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToISODate(t *testing.T) {
	d := time.Date(2025, 1, 3, 15, 30, 12, 0, time.UTC)
	assert.Equal(t, "2025-01-03", ToISODate(d))
}

func TestNextDay(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"mid month", "2025-01-01", "2025-01-02"},
		{"month boundary", "2025-01-31", "2025-02-01"},
		{"year boundary", "2025-12-31", "2026-01-01"},
		{"leap day", "2024-02-28", "2024-02-29"},
		{"malformed input returned unchanged", "not-a-date", "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextDay(tt.in))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"two days", "2025-01-01", "2025-01-03", 2},
		{"same day", "2025-01-01", "2025-01-01", 0},
		{"one week", "2025-01-01", "2025-01-08", 7},
		{"across month", "2025-01-30", "2025-02-02", 3},
		{"reversed range goes negative", "2025-01-05", "2025-01-01", -4},
		{"malformed start", "garbage", "2025-01-01", 0},
		{"malformed end", "2025-01-01", "garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestRangeKind(t *testing.T) {
	assert.Equal(t, KindSingleDay, RangeKind("2025-01-01", "2025-01-02"))
	assert.Equal(t, KindSingleDay, RangeKind("2025-01-01", "2025-01-01"))
	assert.Equal(t, KindMultiDay, RangeKind("2025-01-01", "2025-01-05"))
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		name           string
		start, end     string
		expectedFirst  Range
		expectedSecond Range
	}{
		{
			name:           "even day count",
			start:          "2025-01-01",
			end:            "2025-01-03",
			expectedFirst:  Range{Start: "2025-01-01", End: "2025-01-02"},
			expectedSecond: Range{Start: "2025-01-02", End: "2025-01-03"},
		},
		{
			name:           "odd day count gives first half the extra day",
			start:          "2025-01-01",
			end:            "2025-01-06",
			expectedFirst:  Range{Start: "2025-01-01", End: "2025-01-04"},
			expectedSecond: Range{Start: "2025-01-04", End: "2025-01-06"},
		},
		{
			name:           "across month boundary",
			start:          "2025-01-30",
			end:            "2025-02-03",
			expectedFirst:  Range{Start: "2025-01-30", End: "2025-02-01"},
			expectedSecond: Range{Start: "2025-02-01", End: "2025-02-03"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, err := SplitRange(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFirst, first)
			assert.Equal(t, tt.expectedSecond, second)

			// The two halves must partition the original range
			assert.Equal(t, tt.start, first.Start)
			assert.Equal(t, tt.end, second.End)
			assert.Equal(t, first.End, second.Start)
			assert.Equal(t,
				DaysBetween(tt.start, tt.end),
				DaysBetween(first.Start, first.End)+DaysBetween(second.Start, second.End))
		})
	}
}

func TestSplitRange_TooShort(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"single day", "2025-01-01", "2025-01-02"},
		{"zero days", "2025-01-01", "2025-01-01"},
		{"reversed", "2025-01-05", "2025-01-01"},
		{"malformed", "garbage", "2025-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SplitRange(tt.start, tt.end)
			assert.ErrorIs(t, err, ErrRangeTooShort)
		})
	}
}
