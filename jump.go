package tui

// JumpTarget labels one cell position with a short string a user can type
// to act on it directly (spec.md's Static/Transform variants give this a
// natural home: a jump overlay is structurally a Transform over the
// currently-rendered frame), grounded on the teacher's jump.go/
// AddJumpTarget overlay.
type JumpTarget struct {
	Label string
	X, Y  int
}

// jumpOverlayKey is a context key type for a jump overlay. No rasterize pass
// reads it; the overlay is painted by OverlayJumpLabels.
type jumpOverlayKey struct{}

// jumpState collects targets registered during one render, assigning each
// a short label in registration order (a, b, ..., z, aa, ab, ...).
type jumpState struct {
	active  bool
	targets []JumpTarget
}

// UseJumpOverlay returns a function components call during render to
// register a jump target at their own position, and whether jump mode is
// currently active. Each call starts a fresh target list for this render.
// Nothing in this package sets jump mode active, so active is always false.
func UseJumpOverlay(h *Hooks) (active bool, register func(x, y int)) {
	s := h.nextSlot(slotJump, func() any { return &jumpState{} })
	js := s.value.(*jumpState)
	js.targets = js.targets[:0]
	return js.active, func(x, y int) {
		js.targets = append(js.targets, JumpTarget{Label: jumpLabel(len(js.targets)), X: x, Y: y})
	}
}

// jumpLabel produces a short base-26 label: 0->"a", 25->"z", 26->"aa", ...
func jumpLabel(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < 26 {
		return string(letters[i])
	}
	return jumpLabel(i/26-1) + string(letters[i%26])
}

// OverlayJumpLabels paints each target's label at its cell, as a final
// pass after the ordinary rasterize pass, implementing the jump overlay as
// a post-render Transform over the finished grid rather than a change to
// any single component's own rendering.
func OverlayJumpLabels(g *Grid, targets []JumpTarget, fg, bg Color) {
	for _, t := range targets {
		for i, r := range t.Label {
			g.WriteRune(t.X+i, t.Y, r, 1, fg, bg, AttrBold)
		}
	}
}
