package dates

import (
	"errors"
	"time"
)

const isoLayout = "2006-01-02"

// ErrRangeTooShort is returned by SplitRange when a range does not span
// at least two days and therefore has no interior day to split at.
var ErrRangeTooShort = errors.New("range must span at least two days to split")

// Range is a contiguous span of calendar days.
// Start is inclusive, End is exclusive.
type Range struct {
	Start string
	End   string
}

// Kind classifies a range for display purposes
type Kind string

const (
	KindSingleDay Kind = "single-day"
	KindMultiDay  Kind = "multi-day"
)

// ToISODate formats a time as a 2006-01-02 date string
func ToISODate(t time.Time) string {
	return t.Format(isoLayout)
}

// NextDay returns the calendar day after the given ISO date.
// Malformed input is returned unchanged; callers are expected to feed
// dates that came out of ToISODate.
func NextDay(iso string) string {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return iso
	}
	return ToISODate(t.AddDate(0, 0, 1))
}

// DaysBetween returns end minus start in whole days. Either date failing
// to parse yields 0.
func DaysBetween(start, end string) int {
	s, err := time.Parse(isoLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(isoLayout, end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

// RangeKind classifies a range as single-day or multi-day
func RangeKind(start, end string) Kind {
	if DaysBetween(start, end) <= 1 {
		return KindSingleDay
	}
	return KindMultiDay
}

// SplitRange divides one contiguous range into two adjacent sub-ranges.
// The first half ends where the second begins, and together they cover
// the original range exactly once. On an odd day count the first half
// receives the extra day.
func SplitRange(start, end string) (Range, Range, error) {
	days := DaysBetween(start, end)
	if days < 2 {
		return Range{}, Range{}, ErrRangeTooShort
	}

	s, err := time.Parse(isoLayout, start)
	if err != nil {
		return Range{}, Range{}, err
	}

	mid := ToISODate(s.AddDate(0, 0, (days+1)/2))

	return Range{Start: start, End: mid}, Range{Start: mid, End: end}, nil
}
