package tui

// Rect is a solved element position and size, in cells, measured from the
// terminal origin (spec.md §3 "Layout").
type Rect struct {
	X, Y, W, H float64
}

// Snapped returns the integer-cell rect the rasterizer actually paints,
// applying spec.md §4.2's tie-break: round X/Y down, grow W/H up to absorb
// the fractional remainder, so adjacent siblings never overlap and no cell
// budget is lost to rounding.
func (r Rect) Snapped() (x, y, w, h int) {
	x = int(r.X)
	y = int(r.Y)
	w = int(r.W + (r.X - float64(x)) + 0.999999)
	h = int(r.H + (r.Y - float64(y)) + 0.999999)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}

// LayoutTree holds the solved geometry for every visible node in an Element
// tree, addressed by pre-order index (design notes §9: "arena+index ... a
// simple ownership-by-parent tree suffices. Layout results can be stored in
// a side-table keyed by element index in a pre-order walk").
type LayoutTree struct {
	nodes []*frame
	rects []Rect
}

// Rect returns the solved rect for the node at pre-order index i.
func (t *LayoutTree) Rect(i int) Rect { return t.rects[i] }

// frame mirrors one visible Element during solving; display:none elements
// and their subtrees are omitted entirely (they never reach layout).
type frame struct {
	index    int
	elem     *Element
	children []*frame
	parent   *frame

	w, h         float64
	wKnown       bool
	hKnown       bool
	x, y         float64
	wrappedLines []string // cached Text wrap result at this node's resolved width
}

// Solve lays out root within a viewport of width x height cells and returns
// the resulting tree, addressable by pre-order index. Stateless across
// calls (spec.md §4.2: "The solver is stateless across frames").
func Solve(root Element, width, height int) *LayoutTree {
	return solve(root, width, float64(height), true)
}

// SolveAuto lays out root at a fixed width but lets its own height shrink
// to fit its content (no parent to constrain it), used by inline rendering
// mode when no explicit height was configured.
func SolveAuto(root Element, width int) *LayoutTree {
	return solve(root, width, 0, false)
}

func solve(root Element, width int, height float64, heightKnown bool) *LayoutTree {
	t := &LayoutTree{}
	f := buildFrame(&root, nil, t)
	if f == nil {
		return t
	}
	resolveWidth(f, float64(width), true)
	resolveHeight(f, height, heightKnown)
	position(f, 0, 0)
	t.rects = make([]Rect, len(t.nodes))
	for _, n := range t.nodes {
		t.rects[n.index] = Rect{X: n.x, Y: n.y, W: n.w, H: n.h}
	}
	return t
}

// buildFrame constructs the visible-node tree, skipping display:none nodes,
// and assigns each a pre-order index into t.nodes.
func buildFrame(e *Element, parent *frame, t *LayoutTree) *frame {
	if !e.Style.visible() {
		return nil
	}
	f := &frame{elem: e, parent: parent}
	f.index = len(t.nodes)
	t.nodes = append(t.nodes, f)

	if e.Kind == KindBox || e.Kind == KindTransform {
		for i := range e.Children {
			if c := buildFrame(&e.Children[i], f, t); c != nil {
				f.children = append(f.children, c)
			}
		}
	}
	return f
}

// resolveSize applies a Size against an (optionally known) available extent,
// returning the resolved cells and whether a concrete value was produced.
func resolveSize(s Size, avail float64, availKnown bool, fallback float64, fallbackKnown bool) (float64, bool) {
	switch {
	case !s.Auto && s.Fraction > 0:
		if !availKnown {
			return fallback, fallbackKnown
		}
		v := avail * s.Fraction
		if v < 0 {
			v = 0
		}
		return v, true
	case !s.Auto && s.Cells != 0:
		v := float64(s.Cells)
		if v < 0 {
			v = 0
		}
		return v, true
	default:
		return fallback, fallbackKnown
	}
}

func clampMinMax(v float64, min, max Size, avail float64, availKnown bool) float64 {
	if lo, ok := resolveSize(min, avail, availKnown, 0, false); ok && v < lo {
		v = lo
	}
	if hi, ok := resolveSize(max, avail, availKnown, 0, false); ok && v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}

func isRow(dir FlexDirection) bool { return dir == Row || dir == RowReverse }

// borderCells reports how many cells a bordered box's frame consumes on
// each axis (1 cell each side when a border is set). Transform draws its
// own background/border exactly like Box (rasterize.go), so it counts too.
func borderCells(f *frame) (horiz, vert float64) {
	if (f.elem.Kind == KindBox || f.elem.Kind == KindTransform) && !f.elem.Style.Border.Zero() {
		return 2, 2
	}
	return 0, 0
}

// transformedText returns e's subtree PlainText rewritten by e.Transform, if
// any, per spec.md §4.3: "apply the function to the concatenated plain-text
// content of the subtree before wrapping."
func transformedText(e *Element) string {
	text := e.PlainText()
	if e.Transform != nil {
		text = e.Transform(text)
	}
	return text
}

// resolveWidth resolves f's own width (if not already known from an
// ancestor's main-axis distribution) and propagates widths to children,
// recursing top-down. This is the teacher's flexlayout.go "Update" phase,
// generalized to both FlexDirections.
func resolveWidth(f *frame, availW float64, availKnown bool) {
	if !f.wKnown {
		st := f.elem.Style
		fallback := availW
		fallbackKnown := availKnown
		w, ok := resolveSize(st.Width, availW, availKnown, fallback, fallbackKnown)
		if ok {
			w = clampMinMax(w, st.MinWidth, st.MaxWidth, availW, availKnown)
		}
		f.w = w
		f.wKnown = ok
	}

	if f.elem.Kind == KindText || f.elem.Kind == KindSpacer || f.elem.Kind == KindTransform {
		return
	}
	if len(f.children) == 0 {
		return
	}

	st := f.elem.Style
	hb, _ := borderCells(f)
	contentW := f.w - hb - float64(st.Padding.Left+st.Padding.Right)
	contentKnown := f.wKnown
	if contentW < 0 {
		contentW = 0
	}

	if isRow(st.Direction) {
		distributeMainAxisWidths(f, contentW, contentKnown)
	} else {
		for _, c := range f.children {
			cst := c.elem.Style
			cw, ok := resolveSize(cst.Width, contentW, contentKnown, contentW, contentKnown)
			if ok {
				cw = clampMinMax(cw, cst.MinWidth, cst.MaxWidth, contentW, contentKnown)
			}
			c.w = cw
			c.wKnown = ok
			resolveWidth(c, cw, ok)
		}
	}
}

// distributeMainAxisWidths implements flex-grow/flex-shrink distribution of
// the content width across children when the container's main axis is Row,
// mirroring flexlayout.go's HorizontalLayout.DistributeWidths generalized
// with shrink and an intrinsic-content fallback basis.
func distributeMainAxisWidths(f *frame, contentW float64, contentKnown bool) {
	gap := float64(f.elem.Style.Gap)
	n := len(f.children)
	basis := make([]float64, n)
	grow := make([]float64, n)
	shrink := make([]float64, n)
	var totalBasis, totalGrow, totalShrinkWeight float64

	for i, c := range f.children {
		cst := c.elem.Style
		b, ok := resolveSize(cst.Basis, contentW, contentKnown, 0, false)
		if !ok {
			b, ok = resolveSize(cst.Width, contentW, contentKnown, 0, false)
		}
		if !ok {
			b = intrinsicWidth(c)
		}
		b = clampMinMax(b, cst.MinWidth, cst.MaxWidth, contentW, contentKnown)
		basis[i] = b
		grow[i] = cst.Grow
		shrink[i] = cst.Shrink
		totalBasis += b
		totalGrow += cst.Grow
		totalShrinkWeight += cst.Shrink * b
	}
	if n > 1 {
		totalBasis += gap * float64(n-1)
	}

	remaining := 0.0
	haveRemaining := contentKnown
	if contentKnown {
		remaining = contentW - totalBasis
	}

	for i, c := range f.children {
		w := basis[i]
		if haveRemaining && remaining > 0 && totalGrow > 0 {
			w += remaining * (grow[i] / totalGrow)
		} else if haveRemaining && remaining < 0 && totalShrinkWeight > 0 {
			w += remaining * (shrink[i] * basis[i] / totalShrinkWeight)
		}
		if w < 0 {
			w = 0
		}
		c.w = w
		c.wKnown = true
		resolveWidth(c, w, true)
	}
}

// intrinsicWidth estimates a node's natural (unconstrained) content width,
// used as the flex-basis fallback for Row children with Width:Auto.
func intrinsicWidth(f *frame) float64 {
	switch f.elem.Kind {
	case KindText:
		return float64(width(f.elem.Text))
	case KindSpacer:
		return 0
	case KindTransform:
		st := f.elem.Style
		hb, _ := borderCells(f)
		pad := float64(st.Padding.Left + st.Padding.Right)
		return float64(width(transformedText(f.elem))) + hb + pad
	case KindBox:
		st := f.elem.Style
		hb, _ := borderCells(f)
		pad := float64(st.Padding.Left + st.Padding.Right)
		gap := float64(st.Gap)
		if isRow(st.Direction) {
			var sum float64
			for i, c := range f.children {
				sum += intrinsicWidth(c)
				if i > 0 {
					sum += gap
				}
			}
			return sum + hb + pad
		}
		var max float64
		for _, c := range f.children {
			if iw := intrinsicWidth(c); iw > max {
				max = iw
			}
		}
		return max + hb + pad
	default:
		return 0
	}
}

// resolveHeight performs the bottom-up "Layout" phase: leaf content is
// measured at its now-known width (Text wraps, producing a line count),
// then containers size themselves from children and distribute any
// grow/shrink remainder along the main axis, mirroring flexlayout.go's
// LayoutChildren generalized to both directions.
func resolveHeight(f *frame, availH float64, availKnown bool) {
	st := f.elem.Style

	switch f.elem.Kind {
	case KindText:
		w := int(f.w)
		if w < 0 {
			w = 0
		}
		f.wrappedLines = wrap(f.elem.Text, w)
		f.h = float64(len(f.wrappedLines))
		f.hKnown = true
		return

	case KindSpacer:
		f.h = 0
		f.hKnown = true
		return

	case KindStatic:
		f.h = 0
		f.hKnown = true
		return

	case KindTransform:
		hb, vb := borderCells(f)
		w := int(f.w - hb - float64(st.Padding.Left+st.Padding.Right))
		if w < 0 {
			w = 0
		}
		f.wrappedLines = wrap(transformedText(f.elem), w)
		h, ok := resolveSize(st.Height, availH, availKnown, 0, false)
		if !ok {
			h = float64(len(f.wrappedLines)) + vb + float64(st.Padding.Top+st.Padding.Bottom)
			ok = true
		} else {
			h = clampMinMax(h, st.MinHeight, st.MaxHeight, availH, availKnown)
		}
		f.h = h
		f.hKnown = ok
		return
	}

	// Box: resolve this node's own height first, if style gives an
	// explicit/fraction value, so children are bounded by it rather than by
	// whatever the parent happened to offer (mirrors resolveWidth's top-down
	// order).
	if !f.hKnown {
		if h, ok := resolveSize(st.Height, availH, availKnown, 0, false); ok {
			f.h = clampMinMax(h, st.MinHeight, st.MaxHeight, availH, availKnown)
			f.hKnown = true
		}
	}
	boundH, boundKnown := availH, availKnown
	if f.hKnown {
		boundH, boundKnown = f.h, true
	}

	_, vb := borderCells(f)
	contentH := boundH - vb - float64(st.Padding.Top+st.Padding.Bottom)
	if contentH < 0 {
		contentH = 0
	}
	availH, availKnown = boundH, boundKnown

	if isRow(st.Direction) {
		for _, c := range f.children {
			cst := c.elem.Style
			ch, ok := resolveSize(cst.Height, contentH, availKnown, 0, false)
			if ok {
				ch = clampMinMax(ch, cst.MinHeight, cst.MaxHeight, contentH, availKnown)
				c.h = ch
				c.hKnown = true
			} else if cst.Align == AlignStretch && availKnown {
				c.h = contentH
				c.hKnown = true
			}
			resolveHeight(c, contentH, availKnown)
		}
		finalizeRowHeight(f, availH, availKnown)
	} else {
		for _, c := range f.children {
			resolveHeight(c, contentH, availKnown)
		}
		finalizeColumnHeight(f, availH, availKnown)
	}
}

func finalizeRowHeight(f *frame, availH float64, availKnown bool) {
	var maxH float64
	for _, c := range f.children {
		if c.h > maxH {
			maxH = c.h
		}
	}
	st := f.elem.Style
	_, vb := borderCells(f)
	pad := float64(st.Padding.Top + st.Padding.Bottom)

	if !f.hKnown {
		h, ok := resolveSize(st.Height, availH, availKnown, maxH+vb+pad, true)
		if ok {
			h = clampMinMax(h, st.MinHeight, st.MaxHeight, availH, availKnown)
		}
		f.h = h
		f.hKnown = ok
	}
}

func finalizeColumnHeight(f *frame, availH float64, availKnown bool) {
	st := f.elem.Style
	gap := float64(st.Gap)
	n := len(f.children)

	var totalBasis float64
	var totalGrow, totalShrinkWeight float64
	for i, c := range f.children {
		totalBasis += c.h
		totalGrow += c.elem.Style.Grow
		totalShrinkWeight += c.elem.Style.Shrink * c.h
		if i > 0 {
			totalBasis += gap
		}
	}

	_, vb := borderCells(f)
	pad := float64(st.Padding.Top + st.Padding.Bottom)

	contentAvail := availH - vb - pad
	haveRemaining := availKnown
	remaining := 0.0
	if availKnown {
		remaining = contentAvail - totalBasis
	}

	if haveRemaining && remaining > 0 && totalGrow > 0 {
		for _, c := range f.children {
			extra := remaining * (c.elem.Style.Grow / totalGrow)
			c.h += extra
			reflow(c)
		}
	} else if haveRemaining && remaining < 0 && totalShrinkWeight > 0 {
		for _, c := range f.children {
			shrinkAmt := remaining * (c.elem.Style.Shrink * c.h / totalShrinkWeight)
			c.h += shrinkAmt
			if c.h < 0 {
				c.h = 0
			}
			reflow(c)
		}
	}

	if !f.hKnown {
		h, ok := resolveSize(st.Height, availH, availKnown, totalBasis+vb+pad, true)
		if ok {
			h = clampMinMax(h, st.MinHeight, st.MaxHeight, availH, availKnown)
		}
		f.h = h
		f.hKnown = ok
	}
	_ = n
}

// reflow is invoked after a box's resolved height changes due to flex-grow
// or flex-shrink distribution, so nested auto-height descendants that used
// align:stretch see the corrected content height. It only needs to revisit
// containers, since leaves (Text/Spacer/Transform) don't depend on their own
// final H.
func reflow(f *frame) {
	if f.elem.Kind != KindBox {
		return
	}
	st := f.elem.Style
	_, vb := borderCells(f)
	contentH := f.h - vb - float64(st.Padding.Top+st.Padding.Bottom)
	if contentH < 0 {
		contentH = 0
	}
	if isRow(st.Direction) {
		for _, c := range f.children {
			if c.elem.Style.Align == AlignStretch {
				c.h = contentH
			}
		}
	}
}

// position assigns absolute (x, y) to f and all descendants, given f's own
// top-left corner, applying Justify along the main axis and Align along the
// cross axis, plus margin and absolute positioning overrides.
func position(f *frame, x, y float64) {
	st := f.elem.Style
	x += float64(st.Margin.Left)
	y += float64(st.Margin.Top)
	f.x, f.y = x, y

	if f.elem.Kind == KindText || f.elem.Kind == KindSpacer || f.elem.Kind == KindStatic || f.elem.Kind == KindTransform {
		return
	}
	if len(f.children) == 0 {
		return
	}

	hb, vb := borderCells(f)
	innerX := x + hb/2 + float64(st.Padding.Left)
	innerY := y + vb/2 + float64(st.Padding.Top)
	contentW := f.w - hb - float64(st.Padding.Left+st.Padding.Right)
	contentH := f.h - vb - float64(st.Padding.Top+st.Padding.Bottom)
	gap := float64(st.Gap)

	if isRow(st.Direction) {
		layoutMainAxis(f.children, innerX, innerY, contentW, contentH, gap, st.Justify, st.Align, true)
	} else {
		layoutMainAxis(f.children, innerX, innerY, contentH, contentW, gap, st.Justify, st.Align, false)
	}

	for _, c := range f.children {
		if c.elem.Style.Position == PositionAbsolute {
			position(c, x+float64(c.elem.Style.Left), y+float64(c.elem.Style.Top))
			continue
		}
		position(c, c.x, c.y)
	}
}

// layoutMainAxis assigns each child's leading main-axis coordinate (stored
// ahead of time into c.x/c.y so the caller's position() recursion picks it
// up) per Justify, and its cross-axis coordinate per Align. row selects
// whether "main" means X (true) or Y (false).
func layoutMainAxis(children []*frame, originMain, originCross, mainSize, crossSize float64, gap float64, justify Justify, align Align, row bool) {
	n := len(children)
	if n == 0 {
		return
	}
	sizeOf := func(c *frame) float64 {
		if row {
			return c.w
		}
		return c.h
	}
	var used float64
	for i, c := range children {
		used += sizeOf(c)
		if i > 0 {
			used += gap
		}
	}
	free := mainSize - used
	if free < 0 {
		free = 0
	}

	leading := 0.0
	between := gap
	switch justify {
	case JustifyEnd:
		leading = free
	case JustifyCenter:
		leading = free / 2
	case JustifySpaceBetween:
		if n > 1 {
			between = gap + free/float64(n-1)
		}
	case JustifySpaceAround:
		between = gap + free/float64(n)
		leading = (free / float64(n)) / 2
	}

	cursor := leading
	for i, c := range children {
		mainPos := originMain + cursor
		// cross-axis placement
		crossPos := originCross
		switch align {
		case AlignEnd:
			crossPos = originCross + (crossSize - crossOf(c, row))
		case AlignCenter:
			crossPos = originCross + (crossSize-crossOf(c, row))/2
		}
		if row {
			c.x, c.y = mainPos, crossPos
		} else {
			c.x, c.y = crossPos, mainPos
		}
		cursor += sizeOf(c)
		if i < n-1 {
			cursor += between
		}
	}
}

func crossOf(c *frame, row bool) float64 {
	if row {
		return c.h
	}
	return c.w
}
