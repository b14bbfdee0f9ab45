package tui

import "testing"

func TestColorIsSet(t *testing.T) {
	if (Color{}).IsSet() {
		t.Error("zero-value Color should not be set")
	}
	if !RGBColor(1, 2, 3).IsSet() {
		t.Error("RGBColor should be set")
	}
}

func TestColorSGRTrueColor(t *testing.T) {
	c := RGBColor(10, 20, 30)
	fg := c.sgr(true, ProfileTrueColor)
	if fg != "38;2;10;20;30" {
		t.Errorf("got %q", fg)
	}
	bg := c.sgr(false, ProfileTrueColor)
	if bg != "48;2;10;20;30" {
		t.Errorf("got %q", bg)
	}
}

func TestColorSGRNamed(t *testing.T) {
	c := NamedColorValue(Red)
	if got := c.sgr(true, ProfileANSI); got != "31" {
		t.Errorf("got %q, want 31", got)
	}
	if got := c.sgr(false, ProfileANSI); got != "41" {
		t.Errorf("got %q, want 41", got)
	}
}

func TestColorSGRDowngradesToAscii(t *testing.T) {
	c := RGBColor(200, 10, 10)
	if got := c.sgr(true, ProfileAscii); got != "" {
		t.Errorf("ascii profile should drop color entirely, got %q", got)
	}
}

func TestColorDowngradeTrueColorTo256(t *testing.T) {
	c := RGBColor(255, 0, 0)
	got := c.sgr(true, ProfileANSI256)
	if got == "" {
		t.Fatal("expected a 256-color SGR sequence")
	}
}

func TestNearest256IsDeterministic(t *testing.T) {
	a := nearest256(10, 10, 10)
	b := nearest256(10, 10, 10)
	if a != b {
		t.Error("nearest256 should be deterministic for the same input")
	}
}
