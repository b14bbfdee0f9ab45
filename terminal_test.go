package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	got := normalizeCRLF("a\nb\nc")
	want := "a\r\nb\r\nc"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAttrsSGRCombines(t *testing.T) {
	got := attrsSGR(AttrBold | AttrUnderline)
	if !strings.Contains(got, "\x1b[1m") || !strings.Contains(got, "\x1b[4m") {
		t.Errorf("expected bold and underline codes in %q", got)
	}
}

func TestAttrsSGRNoneIsEmpty(t *testing.T) {
	if got := attrsSGR(0); got != "" {
		t.Errorf("expected empty string for no attrs, got %q", got)
	}
}

func TestSetCursorColorEmitsOSC12ForRGB(t *testing.T) {
	var buf bytes.Buffer
	term := &terminal{out: &buf, isTTY: true}
	term.setCursorColor(RGBColor(0x11, 0x22, 0x33))
	if got := buf.String(); got != "\x1b]12;#112233\x07" {
		t.Errorf("got %q", got)
	}
}

func TestSetCursorColorIgnoresNonRGB(t *testing.T) {
	var buf bytes.Buffer
	term := &terminal{out: &buf, isTTY: true}
	term.setCursorColor(NamedColorValue(Red))
	if buf.Len() != 0 {
		t.Errorf("expected no output for a named color, got %q", buf.String())
	}
}

func TestSetCursorShapeEmitsDECSCUSR(t *testing.T) {
	var buf bytes.Buffer
	term := &terminal{out: &buf, isTTY: true}
	term.setCursorShape(CursorBar)
	if got := buf.String(); got != "\x1b[6 q" {
		t.Errorf("got %q", got)
	}
}

func TestResetCursorColorEmitsOSC112(t *testing.T) {
	var buf bytes.Buffer
	term := &terminal{out: &buf, isTTY: true}
	term.resetCursorColor()
	if got := buf.String(); got != "\x1b]112\x07" {
		t.Errorf("got %q", got)
	}
}

func TestForceClearEmitsClearScreenAndDropsFrontBuffer(t *testing.T) {
	var buf bytes.Buffer
	term := &terminal{out: &buf, isTTY: true, front: NewGrid(10, 5)}
	term.forceClear()
	if got := buf.String(); got != "\x1b[2J" {
		t.Errorf("got %q, want clear-screen sequence", got)
	}
	if term.front != nil {
		t.Error("expected forceClear to drop the diffed front buffer")
	}
}

func TestForceClearNoOpWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	term := &terminal{out: &buf, isTTY: false}
	term.forceClear()
	if buf.Len() != 0 {
		t.Errorf("expected no output for a non-TTY stream, got %q", buf.String())
	}
}

func TestCursorControlNoOpWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	term := &terminal{out: &buf, isTTY: false}
	term.setCursorColor(RGBColor(1, 2, 3))
	term.setCursorShape(CursorBar)
	term.resetCursorColor()
	if buf.Len() != 0 {
		t.Errorf("expected no escape sequences written for a non-TTY stream, got %q", buf.String())
	}
}
