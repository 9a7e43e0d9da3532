// Package state provides a generic observable state container.
//
// A Store holds one value of a state type S. All writes go through Set, which
// takes an Update: a pure function from the current state to the next one.
// The read-compute-write sequence of an Update is one indivisible step; no
// other Set interleaves with it and no subscriber observes an intermediate
// value.
//
//	st := state.New(Counter{})
//	unsubscribe := st.Subscribe(func(next, prev Counter) { ... })
//	st.Set(func(c Counter) Counter { c.N++; return c })
//
// Partial updates are Updates that assign only the fields they name on their
// copy of the state. Since S is a struct value, this is a shallow field-level
// merge: collections are replaced whole, never merged element-wise.
package state

import (
	"slices"
	"sync"
)

// Update computes the next state from the current state. Updates must not
// mutate slices or maps reachable from their argument; they build new ones.
type Update[S any] func(current S) S

// Setter applies an Update to a store. Action builders receive a Setter
// rather than the store itself so that actions can only write through it.
type Setter[S any] func(Update[S])

// Listener is notified after every committed Update with the new and the
// previous state.
type Listener[S any] func(next, prev S)

// Replace returns an Update that discards the current state in favour of next.
func Replace[S any](next S) Update[S] {
	return func(S) S { return next }
}

type subscription[S any] struct {
	id uint64
	fn Listener[S]
}

type change[S any] struct {
	next S
	prev S
}

// Store is a thread-safe observable container for a value of type S.
//
// Notifications are delivered in commit order. A listener may read State or
// call Set; a Set issued from inside a listener is committed immediately and
// its notification is delivered after the current one finishes.
type Store[S any] struct {
	mu          sync.Mutex
	state       S
	listeners   []subscription[S]
	nextID      uint64
	pending     []change[S]
	dispatching bool
}

// New creates a Store holding initial.
func New[S any](initial S) *Store[S] {
	return &Store[S]{state: initial}
}

// State returns the current state. Callers must treat the returned value as
// read-only: slices and maps in it are shared with the store.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set commits update and notifies subscribers. The new state is visible to
// State as soon as Set returns.
//
// When Set is called while the store is already dispatching (from a listener,
// or from another goroutine), the change is queued and delivered by the
// dispatching goroutine, so Set may return before subscribers, including a
// persistence mirror, have seen it. Delivery order is commit order either way,
// and once every concurrent Set has returned, every change has been delivered.
func (s *Store[S]) Set(update Update[S]) {
	if update == nil {
		return
	}
	if s.commit(update) {
		s.drain()
	}
}

// Setter returns s.Set as a Setter.
func (s *Store[S]) Setter() Setter[S] {
	return s.Set
}

// Subscribe registers fn and returns a function that removes it. The returned
// function is idempotent.
func (s *Store[S]) Subscribe(fn Listener[S]) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription[S]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// commit applies update under the lock and reports whether the caller must
// become the dispatcher.
func (s *Store[S]) commit(update Update[S]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := update(prev)
	s.state = next
	s.pending = append(s.pending, change[S]{next: next, prev: prev})

	if s.dispatching {
		return false
	}
	s.dispatching = true
	return true
}

// drain delivers queued changes until none remain. Exactly one goroutine
// drains at a time.
func (s *Store[S]) drain() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.dispatching = false
			s.pending = nil
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		c, listeners, ok := s.dequeue()
		if !ok {
			return
		}
		for _, l := range listeners {
			l.fn(c.next, c.prev)
		}
	}
}

func (s *Store[S]) dequeue() (change[S], []subscription[S], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		s.pending = nil
		s.dispatching = false
		return change[S]{}, nil, false
	}

	c := s.pending[0]
	s.pending[0] = change[S]{}
	s.pending = s.pending[1:]
	return c, slices.Clone(s.listeners), true
}

func (s *Store[S]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription[S]) bool {
		return sub.id == id
	})
}
