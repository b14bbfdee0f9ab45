package tui

// FlexDirection selects the main axis a container lays its children along.
type FlexDirection uint8

const (
	Column FlexDirection = iota
	Row
	ColumnReverse
	RowReverse
)

// Justify controls main-axis distribution of children.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
)

// Align controls cross-axis placement of children.
type Align uint8

const (
	AlignStart Align = iota
	AlignEnd
	AlignCenter
	AlignStretch
)

// Overflow selects how content wider/taller than its box is handled.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
)

// PositionMode selects normal flow vs absolute positioning.
type PositionMode uint8

const (
	PositionRelative PositionMode = iota
	PositionAbsolute
)

// Attr is a bitset of text attributes.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrStrike
	AttrDim
	AttrInverse
)

// With returns a copy of the attribute set with the given flags added.
func (a Attr) With(flags Attr) Attr { return a | flags }

// Has reports whether all of flags are set.
func (a Attr) Has(flags Attr) bool { return a&flags == flags }

// Edges holds four per-side integer values (margin, padding, sizes).
type Edges struct {
	Top, Right, Bottom, Left int
}

// EdgesAll returns an Edges with all four sides set to v.
func EdgesAll(v int) Edges { return Edges{Top: v, Right: v, Bottom: v, Left: v} }

// BorderStyle defines the glyphs drawn for a bordered box's frame.
type BorderStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

// Zero reports whether this is the absence of a border.
func (b BorderStyle) Zero() bool { return b.TopLeft == 0 && b.Horizontal == 0 && b.Vertical == 0 }

var (
	BorderNone = BorderStyle{}

	BorderSingle = BorderStyle{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
	}

	BorderRound = BorderStyle{
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Horizontal: '─', Vertical: '│',
	}

	BorderDouble = BorderStyle{
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Horizontal: '═', Vertical: '║',
	}

	BorderBold = BorderStyle{
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
		Horizontal: '━', Vertical: '┃',
	}
)

// Size is a layout dimension: either unset (Auto true, or both Cells and
// Fraction zero), a fixed number of cells, or a fraction (0,1] of the
// parent's available space (used for percentWidth-style sizing).
type Size struct {
	Auto     bool
	Cells    int
	Fraction float64
}

// SizeAuto lets content/flex determine the size; the zero Size is treated
// the same way by the layout engine.
var SizeAuto = Size{Auto: true}

// Px returns a fixed-cell Size. Negative values are invalid per spec.md §3
// and are clamped to zero by the layout engine, not here, so construction
// never panics.
func Px(n int) Size { return Size{Cells: n} }

// Pct returns a Size expressed as a fraction of the parent's available space.
// f is in [0,1].
func Pct(f float64) Size { return Size{Fraction: f} }

// Style bundles the layout and visual properties spec.md §3 assigns to an
// Element. The zero value is "unstyled / inherit".
type Style struct {
	// Layout
	Direction    FlexDirection
	Grow         float64
	Shrink       float64
	Basis        Size
	Justify      Justify
	Align        Align
	Gap          int
	Width        Size
	Height       Size
	MinWidth     Size
	MinHeight    Size
	MaxWidth     Size
	MaxHeight    Size
	Margin       Edges
	Padding      Edges
	Position     PositionMode
	Top, Left    int // only meaningful when Position == PositionAbsolute
	Overflow     Overflow
	Display      bool // false = display:none, element and children are skipped entirely
	DisplaySet   bool // whether Display was explicitly assigned (defaults to true otherwise)

	// Visual
	Foreground Color
	Background Color
	Attrs      Attr
	Border     BorderStyle
	BorderFG   Color
	BorderBG   Color
	// BorderSideFG, when non-zero, overrides per-side border color; index order
	// is top, right, bottom, left. Zero Color means "use BorderFG".
	BorderSideFG [4]Color
}

// DefaultStyle returns the zero-value style with Display defaulted to visible
// and Shrink defaulted to 1 (flexbox's conventional default).
func DefaultStyle() Style {
	return Style{Display: true, Shrink: 1}
}

// visible reports whether the element participates in layout at all.
func (s Style) visible() bool {
	if !s.DisplaySet {
		return true
	}
	return s.Display
}

// Inherit returns a copy of child merged with parent's inheritable text
// properties (foreground, background, attributes) wherever child leaves
// them unset, per spec.md §4.3 "Style inheritance".
func (s Style) Inherit(parent Style) Style {
	out := s
	if !out.Foreground.IsSet() {
		out.Foreground = parent.Foreground
	}
	if !out.Background.IsSet() {
		out.Background = parent.Background
	}
	out.Attrs |= parent.Attrs
	return out
}
