package schedule

import (
	"fmt"
	"time"

	"github.com/ncaufield/devportal/pkg/core/dates"
)

// Record is the shape the editor needs from a shift: an identity, a date
// span, and a way to produce a copy with a different identity and span
// while keeping every other field.
type Record[T any] interface {
	Key() string
	Span() (start, end string)
	Reissue(id, start, end string) T
}

// NewShiftID generates a locally unique shift id. Ids are derived from
// the wall clock so rows created in one editing session sort by creation.
func NewShiftID() string {
	return fmt.Sprintf("shift_%d", time.Now().UnixNano())
}

// indexOf returns the position of the record with the given id, or -1
func indexOf[T Record[T]](list []T, id string) int {
	for i := range list {
		if list[i].Key() == id {
			return i
		}
	}
	return -1
}

// Update applies a partial patch to the record matching id and returns a
// new list. Unknown ids are a silent no-op. Every other record keeps its
// position and value.
func Update[T Record[T]](list []T, id string, apply func(T) T) []T {
	idx := indexOf(list, id)
	if idx < 0 {
		return list
	}
	out := make([]T, len(list))
	copy(out, list)
	out[idx] = apply(out[idx])
	return out
}

// Add appends a fresh record spanning today to tomorrow. build constructs
// the kind-specific record from the generated id and span.
func Add[T Record[T]](list []T, build func(id, start, end string) T) []T {
	start := dates.ToISODate(time.Now())
	fresh := build(NewShiftID(), start, dates.NextDay(start))
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, fresh)
}

// AddAfter inserts a new record immediately after the one matching id.
// The new record starts where the reference ends, runs one day, and
// copies every other field from the reference. Unknown ids are a no-op.
func AddAfter[T Record[T]](list []T, id string) []T {
	idx := indexOf(list, id)
	if idx < 0 {
		return list
	}

	ref := list[idx]
	_, end := ref.Span()
	fresh := ref.Reissue(NewShiftID(), end, dates.NextDay(end))

	out := make([]T, 0, len(list)+1)
	out = append(out, list[:idx+1]...)
	out = append(out, fresh)
	return append(out, list[idx+1:]...)
}

// Split replaces the record matching id with two records covering the
// two halves of its range. The halves carry ids <id>_a and <id>_b and
// copy every other field. Unsplittable ranges and unknown ids are a
// silent no-op.
func Split[T Record[T]](list []T, id string) []T {
	idx := indexOf(list, id)
	if idx < 0 {
		return list
	}

	ref := list[idx]
	start, end := ref.Span()
	first, second, err := dates.SplitRange(start, end)
	if err != nil {
		return list
	}

	out := make([]T, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, ref.Reissue(id+"_a", first.Start, first.End))
	out = append(out, ref.Reissue(id+"_b", second.Start, second.End))
	return append(out, list[idx+1:]...)
}

// Delete removes the record matching id. Unknown ids are a no-op.
func Delete[T Record[T]](list []T, id string) []T {
	out := make([]T, 0, len(list))
	for _, rec := range list {
		if rec.Key() == id {
			continue
		}
		out = append(out, rec)
	}
	return out
}
