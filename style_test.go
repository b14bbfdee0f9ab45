package tui

import "testing"

func TestStyleInheritFillsUnsetOnly(t *testing.T) {
	parent := DefaultStyle()
	parent.Foreground = NamedColorValue(Red)
	parent.Attrs = AttrBold

	child := DefaultStyle()
	child.Background = NamedColorValue(Blue)

	merged := child.Inherit(parent)
	if merged.Foreground != parent.Foreground {
		t.Errorf("child should inherit parent's foreground when unset")
	}
	if merged.Background != child.Background {
		t.Errorf("child's own background should not be overridden")
	}
	if !merged.Attrs.Has(AttrBold) {
		t.Errorf("child should inherit parent's bold attribute")
	}
}

func TestStyleInheritChildOverridesForeground(t *testing.T) {
	parent := DefaultStyle()
	parent.Foreground = NamedColorValue(Red)

	child := DefaultStyle()
	child.Foreground = NamedColorValue(Green)

	merged := child.Inherit(parent)
	if merged.Foreground != child.Foreground {
		t.Errorf("child's explicit foreground should win over parent's")
	}
}

func TestStyleVisibleDefault(t *testing.T) {
	s := Style{}
	if !s.visible() {
		t.Error("a style with DisplaySet false should default to visible")
	}
}

func TestStyleVisibleExplicitHidden(t *testing.T) {
	s := Style{DisplaySet: true, Display: false}
	if s.visible() {
		t.Error("DisplaySet true + Display false should be hidden")
	}
}

func TestBorderStyleZero(t *testing.T) {
	if !BorderNone.Zero() {
		t.Error("BorderNone should report Zero")
	}
	if BorderSingle.Zero() {
		t.Error("BorderSingle should not report Zero")
	}
}

func TestAttrHasAndWith(t *testing.T) {
	a := AttrBold.With(AttrUnderline)
	if !a.Has(AttrBold) || !a.Has(AttrUnderline) {
		t.Error("With should combine both flags")
	}
	if a.Has(AttrItalic) {
		t.Error("unrelated flag should not be set")
	}
}
