package tui

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRunNonTTYRendersOnceAndReturns(t *testing.T) {
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer outR.Close()
	defer outW.Close()
	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer inR.Close()
	defer inW.Close()

	rendered := 0
	rt := NewRuntime(func(h *Hooks) Element {
		rendered++
		return Text(DefaultStyle(), "hello")
	}, NewOptions().Streams(outW, inR))

	done := make(chan error, 1)
	go func() { done <- rt.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return for non-TTY output within timeout")
	}

	if rendered != 1 {
		t.Errorf("expected exactly one render for the non-TTY fallback, got %d", rendered)
	}
}

func TestOptionsBuilderDefaults(t *testing.T) {
	o := NewOptions()
	if o.mode != ModeFullscreen {
		t.Error("default mode should be fullscreen")
	}
	if o.fps != 60 {
		t.Error("default fps should be 60")
	}
}

func TestOptionsBuilderInline(t *testing.T) {
	o := NewOptions().Inline(5)
	if o.mode != ModeInline || o.height != 5 {
		t.Errorf("Inline(5) should set mode=inline height=5, got mode=%v height=%d", o.mode, o.height)
	}
}

func TestRuntimeStatsAfterNonTTYRender(t *testing.T) {
	outR, outW, _ := os.Pipe()
	defer outR.Close()
	defer outW.Close()
	inR, inW, _ := os.Pipe()
	defer inR.Close()
	defer inW.Close()

	rt := NewRuntime(func(h *Hooks) Element { return Text(DefaultStyle(), "x") }, NewOptions().Streams(outW, inR))
	if err := rt.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// The non-TTY fallback renders exactly once outside the frame-counted
	// loop, so Stats().Frames is not incremented by it; this just exercises
	// that Stats() is safe to call after a completed Run.
	_ = rt.Stats()
}
