// Package store provides a small observable state container. Portal
// views share one store instance (injected, not a package global) and
// subscribe to the slice of state they render through selector
// functions, so an update only notifies the views whose slice changed.
package store

import "sync"

// Unsubscribe removes a subscription when called
type Unsubscribe func()

// Store holds a state value of type S and a set of subscribers
type Store[S any] struct {
	mu    sync.RWMutex
	state S
	subs  map[int]func(old, new S)
	next  int
}

// New creates a store with the given initial state
func New[S any](initial S) *Store[S] {
	return &Store[S]{
		state: initial,
		subs:  make(map[int]func(old, new S)),
	}
}

// Get returns a snapshot of the current state
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the state with update(current) and notifies subscribers.
// Notifications run synchronously on the calling goroutine; callbacks
// must not call back into the store.
func (s *Store[S]) Set(update func(S) S) {
	s.mu.Lock()
	before := s.state
	s.state = update(before)
	after := s.state

	notify := make([]func(old, new S), 0, len(s.subs))
	for _, fn := range s.subs {
		notify = append(notify, fn)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(before, after)
	}
}

func (s *Store[S]) subscribe(fn func(old, new S)) Unsubscribe {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Subscribe registers a callback over the slice of state picked out by
// selector. The callback fires only when the selected value changes.
func Subscribe[S any, V comparable](s *Store[S], selector func(S) V, fn func(V)) Unsubscribe {
	return s.subscribe(func(old, new S) {
		before, after := selector(old), selector(new)
		if before != after {
			fn(after)
		}
	})
}
