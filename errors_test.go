package tui

import (
	"errors"
	"testing"
)

func TestExitErrorWrapsAndUnwraps(t *testing.T) {
	cause := errors.New("boom")
	e := &ExitError{Err: cause}
	if e.Error() != "boom" {
		t.Errorf("got %q", e.Error())
	}
	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to see through ExitError to its cause")
	}
}

func TestAppHandleExitWithErrorWrapsInExitError(t *testing.T) {
	rt := NewRuntime(func(h *Hooks) Element { return nil }, NewOptions())
	cause := errors.New("component failed")
	UseApp(rt.hook).ExitWithError(cause)

	select {
	case <-rt.done:
	default:
		t.Fatal("expected requestExit to close rt.done")
	}
	var exitErr *ExitError
	if !errors.As(rt.exitErr, &exitErr) {
		t.Fatalf("expected rt.exitErr to be *ExitError, got %T", rt.exitErr)
	}
	if !errors.Is(rt.exitErr, cause) {
		t.Error("expected the wrapped error to match cause")
	}
}
