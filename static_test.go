package tui

import (
	"strings"
	"testing"
)

func TestRenderToStringPlainLayout(t *testing.T) {
	root := Box(DefaultStyle(),
		Text(DefaultStyle(), "hello"),
	)
	out := RenderToStringProfile(root, 20, ProfileAscii)
	if !strings.Contains(out, "hello") {
		t.Errorf("expected rendered output to contain 'hello', got %q", out)
	}
}

func TestRenderToStringNoCursorControl(t *testing.T) {
	root := Text(DefaultStyle(), "x")
	out := RenderToStringProfile(root, 5, ProfileAscii)
	if strings.Contains(out, "\x1b[H") || strings.Contains(out, "\x1b[2J") {
		t.Error("static rendering must not contain cursor-control sequences")
	}
}

func TestRenderToStringAppliesColor(t *testing.T) {
	st := DefaultStyle()
	st.Foreground = NamedColorValue(Red)
	root := Text(st, "x")
	out := RenderToStringProfile(root, 5, ProfileANSI)
	if !strings.Contains(out, "31") {
		t.Errorf("expected red SGR code 31 in output, got %q", out)
	}
}
