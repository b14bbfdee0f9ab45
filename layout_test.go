package tui

import "testing"

func TestSolveNonNegative(t *testing.T) {
	root := Box(DefaultStyle(),
		Text(DefaultStyle(), "hello"),
		Box(DefaultStyle(), Text(DefaultStyle(), "nested")),
	)
	tree := Solve(root, 40, 10)
	for i := range tree.nodes {
		r := tree.Rect(i)
		if r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0 {
			t.Errorf("node %d has negative rect: %+v", i, r)
		}
	}
}

func TestSolveColumnStacksChildren(t *testing.T) {
	st := DefaultStyle()
	st.Direction = Column
	root := Box(st,
		Text(DefaultStyle(), "one"),
		Text(DefaultStyle(), "two"),
	)
	tree := Solve(root, 20, 10)
	// node 0 is root, 1 is first Text, 2 is second Text.
	a := tree.Rect(1)
	b := tree.Rect(2)
	if b.Y <= a.Y {
		t.Errorf("second child should be below first: a.Y=%v b.Y=%v", a.Y, b.Y)
	}
}

func TestSolveRowPlacesSideBySide(t *testing.T) {
	st := DefaultStyle()
	st.Direction = Row
	root := Box(st,
		Text(DefaultStyle(), "abc"),
		Text(DefaultStyle(), "de"),
	)
	tree := Solve(root, 40, 5)
	a := tree.Rect(1)
	b := tree.Rect(2)
	if b.X < a.X+a.W {
		t.Errorf("second child should start at/after first child's right edge: a=%+v b=%+v", a, b)
	}
}

func TestSolveDisplayNoneSkipsSubtree(t *testing.T) {
	hidden := DefaultStyle()
	hidden.Display = false
	hidden.DisplaySet = true
	root := Box(DefaultStyle(),
		Box(hidden, Text(DefaultStyle(), "invisible")),
		Text(DefaultStyle(), "visible"),
	)
	tree := Solve(root, 20, 10)
	if len(tree.nodes) != 2 {
		t.Fatalf("expected root+1 visible child (hidden subtree skipped), got %d nodes", len(tree.nodes))
	}
}

func TestSolveGrowFillsRemainingSpace(t *testing.T) {
	st := DefaultStyle()
	st.Direction = Column
	st.Height = Px(10)
	growStyle := DefaultStyle()
	growStyle.Grow = 1
	root := Box(st,
		Text(DefaultStyle(), "fixed"),
		Box(growStyle),
	)
	tree := Solve(root, 10, 10)
	grower := tree.Rect(2)
	if grower.H <= 1 {
		t.Errorf("grow child should absorb remaining height, got H=%v", grower.H)
	}
}

func TestSnappedRounding(t *testing.T) {
	r := Rect{X: 1.5, Y: 0, W: 2.3, H: 1.0}
	x, y, w, h := r.Snapped()
	if x != 1 {
		t.Errorf("x should round down, got %d", x)
	}
	if w < 3 {
		t.Errorf("w should grow up to absorb the fractional remainder, got %d", w)
	}
	_ = y
	_ = h
}
