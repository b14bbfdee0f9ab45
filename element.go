package tui

// Kind tags which Element variant a node is.
type Kind uint8

const (
	KindBox Kind = iota
	KindText
	KindSpacer
	KindTransform
	KindStatic
)

// TransformFunc rewrites the plain-text content of a Transform subtree
// before it is wrapped and painted, per spec.md §4.3.
type TransformFunc func(plainText string) string

// StaticItemRenderer renders one item of a Static list to an Element.
type StaticItemRenderer func(index int) Element

// Element is an immutable UI tree node. A tree is rebuilt every render and
// carries no identity across frames (spec.md §3).
type Element struct {
	Kind  Kind
	Style Style

	// Box, Transform
	Children []Element

	// Text
	Text string

	// Transform
	Transform TransformFunc

	// Static
	StaticCount    int
	StaticRenderer StaticItemRenderer
	// staticKey lets the runtime recognize the same Static producer across
	// frames so it only flushes each item to the persistent region once.
	staticKey *staticIdentity
}

// staticIdentity is a heap-allocated token; two Static elements share history
// iff they were built from the same handle returned by NewStaticHandle.
type staticIdentity struct{}

// Box creates a container Element laying out children per style.
func Box(style Style, children ...Element) Element {
	return Element{Kind: KindBox, Style: style, Children: children}
}

// Text creates a leaf Element holding literal text content.
func Text(style Style, text string) Element {
	return Element{Kind: KindText, Style: style, Text: text}
}

// Spacer creates a flexible filler Element (flex-grow defaults to 1).
func Spacer() Element {
	s := DefaultStyle()
	s.Grow = 1
	return Element{Kind: KindSpacer, Style: s}
}

// TransformElement wraps a subtree, rewriting its concatenated plain text
// before layout/wrapping (spec.md §4.3 "Transform").
func TransformElement(style Style, fn TransformFunc, children ...Element) Element {
	return Element{Kind: KindTransform, Style: style, Transform: fn, Children: children}
}

// staticHandle carries one *staticIdentity, so Static elements built from the
// same handle across renders are recognized as "the same Static producer"
// without needing element identity in general.
type staticHandle struct {
	id *staticIdentity
}

// NewStaticHandle returns a handle to bind to a Static element across
// renders; keep it in a signal or outside the render function (e.g. in a
// hook slot) so the same *staticIdentity is reused every frame.
func NewStaticHandle() staticHandle { return staticHandle{id: &staticIdentity{}} }

// Static creates an Element whose items are rendered once and moved to the
// persistent-output region (spec.md §4.3, §4.7); it never participates in
// the live grid. handle must be stable across renders (see NewStaticHandle).
func Static(handle staticHandle, count int, renderer StaticItemRenderer) Element {
	return Element{Kind: KindStatic, StaticCount: count, StaticRenderer: renderer, staticKey: handle.id}
}

// PlainText returns the concatenation of all literal text under e, used by
// Transform to obtain the subtree's text before wrapping.
func (e Element) PlainText() string {
	switch e.Kind {
	case KindText:
		return e.Text
	case KindBox, KindTransform:
		var out string
		for _, c := range e.Children {
			out += c.PlainText()
		}
		return out
	default:
		return ""
	}
}
