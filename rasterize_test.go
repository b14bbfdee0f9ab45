package tui

import (
	"strings"
	"testing"
)

func readRow(g *Grid, y int) string {
	var b strings.Builder
	for x := 0; x < g.W; x++ {
		c := g.Get(x, y)
		if c.Width == 0 {
			continue
		}
		if c.Rune == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

func TestRasterizeHelloText(t *testing.T) {
	root := Text(DefaultStyle(), "hello")
	tree := Solve(root, 20, 1)
	g := NewGrid(20, 1)
	Rasterize(tree, g, nil)
	row := readRow(g, 0)
	if !strings.HasPrefix(row, "hello") {
		t.Errorf("expected row to start with 'hello', got %q", row)
	}
}

func TestRasterizeBorderAndBackground(t *testing.T) {
	st := DefaultStyle()
	st.Border = BorderSingle
	st.Width = Px(5)
	st.Height = Px(3)
	root := Box(st)
	tree := Solve(root, 10, 5)
	g := NewGrid(10, 5)
	Rasterize(tree, g, nil)
	if g.Get(0, 0).Rune != BorderSingle.TopLeft {
		t.Errorf("expected border corner at origin, got %+v", g.Get(0, 0))
	}
}

func TestRasterizeStaticRoutesToSink(t *testing.T) {
	handle := NewStaticHandle()
	var got []string
	sink := func(key *staticIdentity, item Element, index int) {
		got = append(got, item.PlainText())
	}
	root := Box(DefaultStyle(),
		Static(handle, 2, func(i int) Element {
			return Text(DefaultStyle(), stringsRepeat("x", i+1))
		}),
	)
	tree := Solve(root, 10, 5)
	g := NewGrid(10, 5)
	Rasterize(tree, g, sink)
	if len(got) != 2 || got[0] != "x" || got[1] != "xx" {
		t.Errorf("static sink did not receive expected items, got %#v", got)
	}
	// Static must not paint into the live grid.
	for y := 0; y < g.H; y++ {
		if strings.TrimSpace(readRow(g, y)) != "" {
			t.Errorf("static content leaked into live grid at row %d: %q", y, readRow(g, y))
		}
	}
}

func TestRasterizeTransformRewritesText(t *testing.T) {
	root := TransformElement(DefaultStyle(), strings.ToUpper, Text(DefaultStyle(), "hello"))
	tree := Solve(root, 20, 1)
	g := NewGrid(20, 1)
	Rasterize(tree, g, nil)
	row := readRow(g, 0)
	if !strings.HasPrefix(row, "HELLO") {
		t.Errorf("expected the painted row to start with the transformed text 'HELLO', got %q", row)
	}
	if strings.Contains(row, "hello") {
		t.Errorf("original untransformed text leaked into the grid: %q", row)
	}
}

func TestRasterizeTransformConcatenatesSubtree(t *testing.T) {
	root := TransformElement(DefaultStyle(), strings.ToUpper,
		Text(DefaultStyle(), "foo"),
		Text(DefaultStyle(), "bar"),
	)
	tree := Solve(root, 20, 1)
	g := NewGrid(20, 1)
	Rasterize(tree, g, nil)
	row := readRow(g, 0)
	if !strings.HasPrefix(row, "FOOBAR") {
		t.Errorf("expected Transform to rewrite the subtree's concatenated plain text, got %q", row)
	}
}

func stringsRepeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
