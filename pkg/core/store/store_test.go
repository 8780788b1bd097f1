package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ncaufield/devportal/pkg/core/model"
)

func TestStore_GetSet(t *testing.T) {
	s := New(model.Filters{SortOrder: "asc"})

	assert.Equal(t, "asc", s.Get().SortOrder)

	s.Set(func(f model.Filters) model.Filters {
		f.Search = "gateway"
		return f
	})

	got := s.Get()
	assert.Equal(t, "gateway", got.Search)
	assert.Equal(t, "asc", got.SortOrder, "untouched fields survive updates")
}

func TestSubscribe_NotifiesOnSelectedChange(t *testing.T) {
	s := New(model.Filters{})

	var seen []string
	Subscribe(s, func(f model.Filters) string { return f.Search }, func(v string) {
		seen = append(seen, v)
	})

	s.Set(func(f model.Filters) model.Filters {
		f.Search = "auth"
		return f
	})
	s.Set(func(f model.Filters) model.Filters {
		f.Search = "billing"
		return f
	})

	assert.Equal(t, []string{"auth", "billing"}, seen)
}

func TestSubscribe_IgnoresUnselectedChanges(t *testing.T) {
	s := New(model.Filters{})

	calls := 0
	Subscribe(s, func(f model.Filters) string { return f.Search }, func(string) {
		calls++
	})

	// Changing a different slice of state must not notify
	s.Set(func(f model.Filters) model.Filters {
		f.AssigneeID = "m1"
		return f
	})

	// Setting the selected slice to its current value must not notify
	s.Set(func(f model.Filters) model.Filters {
		f.Search = ""
		return f
	})

	assert.Zero(t, calls)
}

func TestUnsubscribe(t *testing.T) {
	s := New(model.Filters{})

	calls := 0
	unsub := Subscribe(s, func(f model.Filters) string { return f.Status }, func(string) {
		calls++
	})

	s.Set(func(f model.Filters) model.Filters {
		f.Status = "degraded"
		return f
	})
	unsub()
	s.Set(func(f model.Filters) model.Filters {
		f.Status = "healthy"
		return f
	})

	assert.Equal(t, 1, calls)
}

func TestSubscribe_MultipleSelectors(t *testing.T) {
	s := New(model.Filters{})

	var searches, statuses int
	Subscribe(s, func(f model.Filters) string { return f.Search }, func(string) { searches++ })
	Subscribe(s, func(f model.Filters) string { return f.Status }, func(string) { statuses++ })

	s.Set(func(f model.Filters) model.Filters {
		f.Search = "x"
		f.Status = "y"
		return f
	})

	assert.Equal(t, 1, searches)
	assert.Equal(t, 1, statuses)
}
