package tui

import "testing"

func TestGridWriteTextClips(t *testing.T) {
	g := NewGrid(5, 1)
	g.WriteText(0, 0, "abcdefgh", 5, Color{}, Color{}, 0)
	var out []rune
	for x := 0; x < 5; x++ {
		out = append(out, g.Get(x, 0).Rune)
	}
	if string(out) != "abcde" {
		t.Errorf("expected clipped text 'abcde', got %q", string(out))
	}
}

func TestGridWideRuneContinuation(t *testing.T) {
	g := NewGrid(4, 1)
	g.WriteRune(0, 0, '你', 2, Color{}, Color{}, 0)
	c0 := g.Get(0, 0)
	c1 := g.Get(1, 0)
	if c0.Width != 2 || c0.Rune != '你' {
		t.Errorf("expected wide cell at 0, got %+v", c0)
	}
	if c1.Width != 0 {
		t.Errorf("expected continuation cell at 1, got %+v", c1)
	}
}

func TestGridDiffRow(t *testing.T) {
	a := NewGrid(3, 2)
	b := NewGrid(3, 2)
	if a.DiffRow(b, 0) {
		t.Error("two blank grids should not differ")
	}
	b.Set(1, 0, Cell{Rune: 'x', Width: 1})
	if !a.DiffRow(b, 0) {
		t.Error("modified row should be reported as different")
	}
	if a.DiffRow(b, 1) {
		t.Error("untouched row should not be reported as different")
	}
}

func TestGridDrawBorder(t *testing.T) {
	g := NewGrid(5, 3)
	g.DrawBorder(0, 0, 5, 3, BorderSingle, Color{}, Color{}, [4]Color{})
	if g.Get(0, 0).Rune != BorderSingle.TopLeft {
		t.Errorf("expected top-left corner glyph")
	}
	if g.Get(4, 2).Rune != BorderSingle.BottomRight {
		t.Errorf("expected bottom-right corner glyph")
	}
}

func TestGridResizeClears(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 1, Cell{Rune: 'x', Width: 1})
	g.Resize(4, 4)
	if g.Get(1, 1).Rune == 'x' {
		t.Error("resize should discard previous contents")
	}
}
