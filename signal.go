package tui

import (
	"reflect"
	"sync"
)

// dependent is anything that can be notified a signal it read has changed.
// Hook slots implement this to request a re-render; grounded on
// basementui's go/signals/signal.go Subscriber interface.
type dependent interface {
	notify()
	trackRead(s signalRef)
}

// signalRef lets a dependent unsubscribe from a signal without knowing its
// value type, so Hooks can rebuild its subscription set from scratch every
// frame (spec.md §9: subscriptions are a snapshot of this frame's reads,
// not an accumulation across frames).
type signalRef interface {
	unsubscribe(d dependent)
}

// tracker records which dependent, if any, is currently reading
// signals so that Get() can register it as a subscriber. Only one render
// goroutine ever touches this at a time (the scheduler serializes renders),
// so a plain mutex-guarded slice stands in for basementui's package-level
// activeSubscriber/activeMu.
var tracker struct {
	mu    sync.Mutex
	stack []dependent
}

func pushActive(d dependent) {
	tracker.mu.Lock()
	tracker.stack = append(tracker.stack, d)
	tracker.mu.Unlock()
}

func popActive() {
	tracker.mu.Lock()
	tracker.stack = tracker.stack[:len(tracker.stack)-1]
	tracker.mu.Unlock()
}

func currentDependent() dependent {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if len(tracker.stack) == 0 {
		return nil
	}
	return tracker.stack[len(tracker.stack)-1]
}

// trackDependency runs fn with d registered as the active reader, so any
// Signal.Get() called within fn subscribes d.
func trackDependency(d dependent, fn func()) {
	pushActive(d)
	defer popActive()
	fn()
}

// Signal is a reactive value cell: reading it inside a component body
// records a dependency, and writing a new, unequal value schedules a
// re-render of every component that read it (spec.md §4.5 "UseSignal"),
// grounded on basementui's Signal[T].
type Signal[T any] struct {
	mu          sync.Mutex
	value       T
	subscribers map[dependent]struct{}
}

// NewSignal constructs a signal holding the given initial value. Hook code
// normally obtains one via UseSignal rather than calling this directly.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subscribers: make(map[dependent]struct{})}
}

// Get returns the current value and, if called while a component is
// rendering, subscribes that component to future changes.
func (s *Signal[T]) Get() T {
	if d := currentDependent(); d != nil {
		s.mu.Lock()
		s.subscribers[d] = struct{}{}
		s.mu.Unlock()
		d.trackRead(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// unsubscribe implements signalRef.
func (s *Signal[T]) unsubscribe(d dependent) {
	s.mu.Lock()
	delete(s.subscribers, d)
	s.mu.Unlock()
}

// Peek returns the current value without recording a dependency, for use
// outside render (e.g. inside an effect or command callback).
func (s *Signal[T]) Peek() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores a new value and notifies subscribers, unless the value is
// equal to the one already stored (spec.md §4.5's "no-op write" rule).
// Comparison uses reflect.DeepEqual, so slices, maps and structs compare by
// content; non-nil func values never compare equal and always notify, and a
// panic during comparison counts as "not equal" (see DESIGN.md).
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	if equalValue(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	subs := make([]dependent, 0, len(s.subscribers))
	for d := range s.subscribers {
		subs = append(subs, d)
	}
	s.mu.Unlock()

	for _, d := range subs {
		d.notify()
	}
}

// Update reads the current value, applies fn, and stores the result,
// atomically with respect to concurrent writers. fn runs while the signal is
// locked, so it must not call methods on s itself.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	if equalValue(s.value, next) {
		s.mu.Unlock()
		return
	}
	s.value = next
	subs := make([]dependent, 0, len(s.subscribers))
	for d := range s.subscribers {
		subs = append(subs, d)
	}
	s.mu.Unlock()

	for _, d := range subs {
		d.notify()
	}
}

func equalValue(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return reflect.DeepEqual(a, b)
}
