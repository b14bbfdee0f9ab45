package tui

import (
	"fmt"
)

// Component is a render function: given its hook context, it returns the
// Element subtree it wants painted this frame. Components form a tree by
// calling h.Child(i) to obtain a nested hook context for a child component,
// at the same position every frame (spec.md §4.4 "positional hooks").
type Component func(h *Hooks) Element

type slotKind uint8

const (
	slotSignal slotKind = iota
	slotEffect
	slotCommand
	slotInput
	slotFocus
	slotApp
	slotMemo
	slotJump
)

type slot struct {
	kind  slotKind
	value any // *Signal[T], *effectState, Dispatch, *func(Key), focus ID int, AppHandle, memo state, *jumpState
}

type effectState struct {
	deps    []any
	cleanup func()
	ran     bool
}

// Hooks is one component instance's persistent state: a positional slot
// list that must be visited in the same order every frame, plus a tree of
// child instances keyed by the position at which h.Child was called.
// Grounded on basementui's signal.go dependency-tracking design, generalized
// from "one global effect per app" into one slot list per component frame.
type Hooks struct {
	rt *Runtime

	slots      []slot
	cursor     int
	children   map[int]*Hooks
	childOrder int
	touched    map[int]bool

	subscribed []signalRef

	focusID int // assigned lazily by UseFocus
}

func newHooks(rt *Runtime) *Hooks {
	return &Hooks{rt: rt, children: make(map[int]*Hooks)}
}

// beginFrame resets the positional cursors before this component is
// invoked again; called by the runtime/Child just before calling the
// Component function.
func (h *Hooks) beginFrame() {
	h.cursor = 0
	h.childOrder = 0
	h.touched = make(map[int]bool)
	for _, s := range h.subscribed {
		s.unsubscribe(h)
	}
	h.subscribed = h.subscribed[:0]
}

// trackRead implements dependent: records that this frame's render read s,
// so it can be unsubscribed at the start of the next frame if this frame
// turns out not to read it again.
func (h *Hooks) trackRead(s signalRef) {
	h.subscribed = append(h.subscribed, s)
}

// endFrame drops any child Hooks that weren't visited this frame (their
// component was conditionally omitted), running effect cleanups first.
func (h *Hooks) endFrame() {
	for i, c := range h.children {
		if !h.touched[i] {
			c.dispose()
			delete(h.children, i)
		}
	}
}

func (h *Hooks) dispose() {
	for _, s := range h.slots {
		if s.kind == slotEffect {
			if es, ok := s.value.(*effectState); ok && es.cleanup != nil {
				es.cleanup()
			}
		}
	}
	for _, c := range h.children {
		c.dispose()
	}
}

// Child returns the nested Hooks for the child component invoked at this
// call site, creating it on first use. The child is identified by how many
// Child calls preceded it in this invocation of the parent component, so
// Child calls must happen in the same order every frame; use an explicit key
// via ChildKeyed for list items that can reorder.
func (h *Hooks) Child() *Hooks {
	i := h.childOrder
	h.childOrder++
	return h.childAt(i)
}

// ChildKeyed returns a stable nested Hooks identified by key, for list
// items whose order may change between frames (spec.md §4.4 "keyed
// children"); key must be unique among the parent's keyed children.
func (h *Hooks) ChildKeyed(key int) *Hooks {
	return h.childAt(key)
}

func (h *Hooks) childAt(i int) *Hooks {
	c, ok := h.children[i]
	if !ok {
		c = newHooks(h.rt)
		h.children[i] = c
	}
	h.touched[i] = true
	return c
}

// nextSlot returns the slot at the current cursor position, creating it
// with init() if this is the first time this position has been visited,
// and verifying the slot kind matches what was recorded last frame.
func (h *Hooks) nextSlot(kind slotKind, init func() any) *slot {
	i := h.cursor
	h.cursor++
	if i < len(h.slots) {
		s := &h.slots[i]
		if s.kind != kind {
			panic(&HookError{Index: i, Expected: s.kind, Got: kind})
		}
		return s
	}
	if i != len(h.slots) {
		panic(&HookError{Index: i, Expected: kind, Got: kind, Message: "hook called out of order"})
	}
	h.slots = append(h.slots, slot{kind: kind, value: init()})
	return &h.slots[i]
}

// HookError reports a hook called in a different order or with a different
// kind than the previous frame, which breaks the positional slot mapping
// (spec.md §4.4's ordering invariant).
type HookError struct {
	Index    int
	Expected slotKind
	Got      slotKind
	Message  string
}

func (e *HookError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tui: hook order violation at slot %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("tui: hook order violation at slot %d: expected kind %d, got %d", e.Index, e.Expected, e.Got)
}

// notify implements dependent: a Signal read during this component's
// render calls back here when written, and we ask the runtime to
// re-render.
func (h *Hooks) notify() {
	h.rt.requestRender()
}

// UseSignal returns a *Signal[T] that persists across this component's
// renders, initialized to initial the first time it's called.
func UseSignal[T any](h *Hooks, initial T) *Signal[T] {
	s := h.nextSlot(slotSignal, func() any { return NewSignal(initial) })
	return s.value.(*Signal[T])
}

// UseEffect runs fn after this frame's render commits, whenever deps differs
// from the previous frame's deps (by reflect.DeepEqual), or on the first
// render. If fn returns a non-nil cleanup, it runs before the next fn call
// and when the component is unmounted (spec.md §4.5 "UseEffect").
func UseEffect(h *Hooks, deps []any, fn func() func()) {
	s := h.nextSlot(slotEffect, func() any { return &effectState{} })
	es := s.value.(*effectState)
	changed := !es.ran || !depsEqual(es.deps, deps)
	es.deps = deps
	if changed {
		h.rt.deferEffect(func() {
			if es.cleanup != nil {
				es.cleanup()
			}
			es.cleanup = fn()
			es.ran = true
		})
	}
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalValue(a[i], b[i]) {
			return false
		}
	}
	return true
}

// UseMemo recomputes and caches fn()'s result only when deps changes.
func UseMemo[T any](h *Hooks, deps []any, fn func() T) T {
	type memoState struct {
		deps []any
		val  any
	}
	s := h.nextSlot(slotMemo, func() any { return &memoState{} })
	ms := s.value.(*memoState)
	if ms.val == nil || !depsEqual(ms.deps, deps) {
		ms.val = fn()
		ms.deps = append([]any(nil), deps...)
	}
	return ms.val.(T)
}

// Dispatch sends a Command to the runtime's executor; obtained via
// UseCommand.
type Dispatch func(Command)

// UseCommand returns a stable Dispatch function for issuing Commands
// imperatively from event handlers (e.g. UseInput callbacks), which have no
// deps tuple of their own to compare against. UseCommandEffect is the
// deps-tracked hook spec.md §4.4 describes as "cmd"; this is a supporting
// convenience for call sites that aren't driven by a render-time diff.
func UseCommand(h *Hooks) Dispatch {
	s := h.nextSlot(slotCommand, func() any {
		return Dispatch(func(c Command) { h.rt.dispatch(c) })
	})
	return s.value.(Dispatch)
}

// UseCommandEffect is spec.md §4.4's "cmd(deps, fn)" hook: like UseEffect,
// fn only runs again when deps changes (or on first render), but fn returns
// a Command that gets appended to the per-frame command queue instead of an
// optional cleanup closure.
func UseCommandEffect(h *Hooks, deps []any, fn func() Command) {
	s := h.nextSlot(slotCommand, func() any { return &effectState{} })
	es := s.value.(*effectState)
	changed := !es.ran || !depsEqual(es.deps, deps)
	es.deps = deps
	if changed {
		h.rt.deferEffect(func() {
			es.ran = true
			h.rt.dispatch(fn())
		})
	}
}

// UseInput registers handler to receive key events while this component is
// mounted, re-registering the latest closure every frame so it always sees
// current render-scope state (grounded on basementui's input dispatch
// model).
func UseInput(h *Hooks, handler func(Key)) {
	s := h.nextSlot(slotInput, func() any { return new(func(Key)) })
	fp := s.value.(*func(Key))
	*fp = handler
	h.rt.registerInputHandler(h, fp)
}

// UseFocus reports whether this component currently holds input focus, and
// returns a function to request focus. Order of first calls across
// components determines Tab-cycle order (focusmanager.go's slot model).
func UseFocus(h *Hooks) (focused bool, request func()) {
	s := h.nextSlot(slotFocus, func() any {
		id := h.rt.focus.register()
		return id
	})
	id := s.value.(int)
	return h.rt.focus.current() == id, func() { h.rt.focus.requestFocus(id) }
}

// AppHandle exposes process-lifecycle controls to components.
type AppHandle struct {
	rt *Runtime
}

// Exit requests the runtime stop after this frame finishes committing.
func (a AppHandle) Exit() { a.rt.requestExit(nil) }

// ExitWithError requests the runtime stop and surface err from Run, wrapped
// in *ExitError so callers can tell a requested exit apart from a driver
// failure.
func (a AppHandle) ExitWithError(err error) {
	if err != nil {
		err = &ExitError{Err: err}
	}
	a.rt.requestExit(err)
}

// SetCursorShape changes the terminal cursor glyph via DECSCUSR; a no-op
// before the terminal driver has started or on a non-TTY stream.
func (a AppHandle) SetCursorShape(shape CursorShape) {
	if a.rt.term != nil {
		a.rt.term.setCursorShape(shape)
	}
}

// SetCursorColor recolors the terminal cursor via OSC 12, carried over from
// the teacher's BufferCursorColor; only takes effect for RGB colors.
func (a AppHandle) SetCursorColor(c Color) {
	if a.rt.term != nil {
		a.rt.term.setCursorColor(c)
	}
}

// ResetCursorColor restores the terminal's default cursor color via OSC 112.
func (a AppHandle) ResetCursorColor() {
	if a.rt.term != nil {
		a.rt.term.resetCursorColor()
	}
}

// UseApp returns a handle for exiting the application.
func UseApp(h *Hooks) AppHandle {
	s := h.nextSlot(slotApp, func() any { return AppHandle{rt: h.rt} })
	return s.value.(AppHandle)
}
