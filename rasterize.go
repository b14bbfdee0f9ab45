package tui

// StaticSink receives one rendered Static item, in order, every frame; the
// caller (the scheduler) is responsible for deduping by key+index so each
// item only reaches the persistent region once (spec.md §4.7).
type StaticSink func(key *staticIdentity, item Element, index int)

// Rasterize paints the solved tree t into g, in teacher's flexlayout.go
// draw() order: background, then border, then children (recursing), then
// own text. Static subtrees never touch g; each new item is handed to sink
// instead.
func Rasterize(t *LayoutTree, g *Grid, sink StaticSink) {
	if len(t.nodes) == 0 {
		return
	}
	paint(t.nodes[0], g, DefaultStyle(), sink, clip{x: 0, y: 0, w: g.W, h: g.H, set: true})
}

// clip is the active clipping rectangle in grid coordinates. Rasterize starts
// from the grid bounds and each Overflow:Hidden ancestor narrows it; a clip
// with set false allows every cell.
type clip struct {
	x, y, w, h int
	set        bool
}

func (c clip) intersect(x, y, w, h int) clip {
	if !c.set {
		return clip{x: x, y: y, w: w, h: h, set: true}
	}
	x1 := max(c.x, x)
	y1 := max(c.y, y)
	x2 := min(c.x+c.w, x+w)
	y2 := min(c.y+c.h, y+h)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return clip{x: x1, y: y1, w: x2 - x1, h: y2 - y1, set: true}
}

func (c clip) contains(x, y int) bool {
	if !c.set {
		return true
	}
	return x >= c.x && x < c.x+c.w && y >= c.y && y < c.y+c.h
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func paint(f *frame, g *Grid, parentStyle Style, sink StaticSink, cl clip) {
	st := f.elem.Style.Inherit(parentStyle)
	x, y, w, h := Rect{X: f.x, Y: f.y, W: f.w, H: f.h}.Snapped()

	switch f.elem.Kind {
	case KindStatic:
		paintStatic(f, sink)
		return

	case KindText:
		paintText(f, g, st, cl, x, y, w)
		return

	case KindSpacer:
		return

	case KindTransform:
		// A Transform subtree paints as a single text block: its own
		// background/border, then the already-rewritten, already-wrapped
		// lines computed by resolveHeight (spec.md §4.3). Its children never
		// paint themselves.
		paintBoxChrome(f, g, st, x, y, w, h, cl)
		hb, vb := borderCells(f)
		contentX := x + int(hb)/2 + st.Padding.Left
		contentY := y + int(vb)/2 + st.Padding.Top
		contentW := w - int(hb) - (st.Padding.Left + st.Padding.Right)
		if contentW < 0 {
			contentW = 0
		}
		paintText(f, g, st, cl, contentX, contentY, contentW)
		return
	}

	// Box
	paintBoxChrome(f, g, st, x, y, w, h, cl)

	childCl := cl
	if st.Overflow == OverflowHidden {
		hb, vb := borderCells(f)
		childCl = cl.intersect(x+int(hb)/2, y+int(vb)/2, w-int(hb), h-int(vb))
	}

	for _, c := range f.children {
		paint(c, g, st, sink, childCl)
	}
}

// paintBoxChrome draws a bordered box's background and border into g,
// shared by Box and Transform (which paints its own chrome, then a single
// transformed text block, instead of recursing into children).
func paintBoxChrome(f *frame, g *Grid, st Style, x, y, w, h int, cl clip) {
	if st.Background.IsSet() {
		for row := y; row < y+h; row++ {
			for col := x; col < x+w; col++ {
				if cl.contains(col, row) {
					g.Set(col, row, Cell{Rune: ' ', Width: 1, Background: st.Background})
				}
			}
		}
	}
	if !st.Border.Zero() {
		paintBorderClipped(g, x, y, w, h, st, cl)
	}
}

func paintBorderClipped(g *Grid, x, y, w, h int, st Style, cl clip) {
	if w < 2 || h < 2 {
		return
	}
	tmp := NewGrid(w, h)
	tmp.DrawBorder(0, 0, w, h, st.Border, st.BorderFG.orFallback(st.Foreground), st.Background, st.BorderSideFG)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := tmp.Get(col, row)
			if c.Width == 0 && c.Rune == 0 {
				continue
			}
			gx, gy := x+col, y+row
			if cl.contains(gx, gy) {
				g.Set(gx, gy, c)
			}
		}
	}
}

func paintText(f *frame, g *Grid, st Style, cl clip, x, y, w int) {
	for i, line := range f.wrappedLines {
		row := y + i
		if !cl.set {
			g.WriteText(x, row, line, w, st.Foreground, st.Background, st.Attrs)
			continue
		}
		if row < cl.y || row >= cl.y+cl.h {
			continue
		}
		lo := max(x, cl.x)
		hi := min(x+w, cl.x+cl.w)
		if hi <= lo {
			continue
		}
		// Re-clip from the left edge of the intersection; WriteText always
		// starts at its given x, so offset into the line when cl.x > x.
		offset := lo - x
		clipped := sliceByWidth(line, offset, hi-lo)
		g.WriteText(lo, row, clipped, hi-lo, st.Foreground, st.Background, st.Attrs)
	}
}

// sliceByWidth returns the substring of s covering display columns
// [offset, offset+n), dropping any cluster that straddles the boundary.
func sliceByWidth(s string, offset, n int) string {
	col := 0
	var out []byte
	for _, c := range clusters(s) {
		if col >= offset && col+c.width <= offset+n {
			out = append(out, c.text...)
		}
		col += c.width
	}
	return string(out)
}

func paintStatic(f *frame, sink StaticSink) {
	if sink == nil || f.elem.StaticRenderer == nil {
		return
	}
	for i := 0; i < f.elem.StaticCount; i++ {
		item := f.elem.StaticRenderer(i)
		sink(f.elem.staticKey, item, i)
	}
}

// orFallback returns c if set, else fallback.
func (c Color) orFallback(fallback Color) Color {
	if c.IsSet() {
		return c
	}
	return fallback
}
