package tui

// Cell is one character position on screen. Wide glyphs (display width 2)
// occupy their own cell plus a continuation cell so column arithmetic stays
// 1:1 with terminal columns, mirroring the teacher's buffer.go Cell/wide-rune
// handling.
type Cell struct {
	Rune       rune
	Width      int // 0 for a continuation cell, 1 or 2 otherwise
	Foreground Color
	Background Color
	Attrs      Attr
}

func blankCell() Cell {
	return Cell{Rune: ' ', Width: 1}
}

// Grid is a character matrix: the rasterizer paints a new Grid every frame,
// and DiffRow compares it row by row against the previously flushed Grid
// (the terminal driver's front buffer) so only changed rows are redrawn,
// grounded on the teacher's Buffer/dirtyRows design in buffer.go and
// bufferpool.go's front/back swap.
type Grid struct {
	W, H  int
	cells []Cell // len == W*H, row-major
}

// NewGrid allocates a blank grid of the given size.
func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, cells: make([]Cell, w*h)}
	g.Clear()
	return g
}

// Clear resets every cell to a blank space with no styling.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blankCell()
	}
}

// Resize reallocates the grid to the new dimensions, discarding contents
// (a resize always forces a full repaint, so preserving old cells has no
// benefit).
func (g *Grid) Resize(w, h int) {
	if w == g.W && h == g.H {
		return
	}
	g.W, g.H = w, h
	g.cells = make([]Cell, w*h)
	g.Clear()
}

func (g *Grid) at(x, y int) int { return y*g.W + x }

// Get returns the cell at (x, y), or a blank cell if out of bounds.
func (g *Grid) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return blankCell()
	}
	return g.cells[g.at(x, y)]
}

// Set writes a single-width cell at (x, y). Out-of-bounds writes are
// silently dropped, matching the teacher's clip-at-the-edge behavior.
func (g *Grid) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.cells[g.at(x, y)] = c
}

// WriteRune paints one grapheme cluster's worth of content at (x, y): w==2
// writes a continuation cell at x+1 so the glyph isn't immediately
// overwritten by the next write, matching buffer.go's wide-rune bookkeeping.
func (g *Grid) WriteRune(x, y int, r rune, w int, fg, bg Color, attrs Attr) {
	if w <= 0 {
		w = 1
	}
	g.Set(x, y, Cell{Rune: r, Width: w, Foreground: fg, Background: bg, Attrs: attrs})
	if w == 2 {
		g.Set(x+1, y, Cell{Rune: 0, Width: 0, Foreground: fg, Background: bg, Attrs: attrs})
	}
}

// WriteText paints s starting at (x, y), clipping at clipW cells (or the
// grid edge, whichever is smaller). Any cluster that would only partially
// fit is dropped rather than split, per spec.md's truncate-not-ellipsize
// decision.
func (g *Grid) WriteText(x, y int, s string, clipW int, fg, bg Color, attrs Attr) {
	cursor := x
	limit := x + clipW
	if g.W < limit {
		limit = g.W
	}
	for _, c := range clusters(s) {
		if cursor+c.width > limit {
			break
		}
		var r rune
		for _, rn := range c.text {
			r = rn
			break
		}
		g.WriteRune(cursor, y, r, c.width, fg, bg, attrs)
		cursor += c.width
	}
}

// FillRect paints every cell in the rectangle with a blank of the given
// background, used to paint a box's own background before children and
// border are drawn on top (flexlayout.go's draw() ordering).
func (g *Grid) FillRect(x, y, w, h int, bg Color) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			g.Set(col, row, Cell{Rune: ' ', Width: 1, Background: bg})
		}
	}
}

// DrawBorder paints a single-cell-thick frame around the rectangle using
// style's glyphs, optionally overriding per-side color via sideFG (sideFG[i]
// == zero-value Color means "use fg" for that side; order top,right,bottom,
// left), grounded on buffer.go's DrawBorder/mergeBorders.
func (g *Grid) DrawBorder(x, y, w, h int, style BorderStyle, fg, bg Color, sideFG [4]Color) {
	if w < 2 || h < 2 || style.Zero() {
		return
	}
	top, right, bottom, left := fg, fg, fg, fg
	if sideFG[0].IsSet() {
		top = sideFG[0]
	}
	if sideFG[1].IsSet() {
		right = sideFG[1]
	}
	if sideFG[2].IsSet() {
		bottom = sideFG[2]
	}
	if sideFG[3].IsSet() {
		left = sideFG[3]
	}

	g.WriteRune(x, y, style.TopLeft, 1, top, bg, 0)
	g.WriteRune(x+w-1, y, style.TopRight, 1, top, bg, 0)
	g.WriteRune(x, y+h-1, style.BottomLeft, 1, bottom, bg, 0)
	g.WriteRune(x+w-1, y+h-1, style.BottomRight, 1, bottom, bg, 0)
	for col := x + 1; col < x+w-1; col++ {
		g.WriteRune(col, y, style.Horizontal, 1, top, bg, 0)
		g.WriteRune(col, y+h-1, style.Horizontal, 1, bottom, bg, 0)
	}
	for row := y + 1; row < y+h-1; row++ {
		g.WriteRune(x, row, style.Vertical, 1, left, bg, 0)
		g.WriteRune(x+w-1, row, style.Vertical, 1, right, bg, 0)
	}
}

// DiffRow reports whether row y differs between g (the new frame) and
// prev (the previously flushed frame). Used by the terminal driver to skip
// emitting unchanged rows (spec.md §5 incremental redraw).
func (g *Grid) DiffRow(prev *Grid, y int) bool {
	if prev == nil || prev.W != g.W || prev.H != g.H {
		return true
	}
	base := y * g.W
	for x := 0; x < g.W; x++ {
		if g.cells[base+x] != prev.cells[base+x] {
			return true
		}
	}
	return false
}
