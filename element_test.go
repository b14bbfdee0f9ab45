package tui

import "testing"

func TestPlainTextConcatenatesSubtree(t *testing.T) {
	root := Box(DefaultStyle(),
		Text(DefaultStyle(), "a"),
		Box(DefaultStyle(), Text(DefaultStyle(), "b")),
		Spacer(),
	)
	if got := root.PlainText(); got != "ab" {
		t.Errorf("got %q, want %q", got, "ab")
	}
}

func TestStaticHandleIdentityStable(t *testing.T) {
	h1 := NewStaticHandle()
	h2 := NewStaticHandle()
	e1 := Static(h1, 1, func(int) Element { return Text(DefaultStyle(), "x") })
	e2 := Static(h1, 1, func(int) Element { return Text(DefaultStyle(), "x") })
	e3 := Static(h2, 1, func(int) Element { return Text(DefaultStyle(), "x") })

	if e1.staticKey != e2.staticKey {
		t.Error("two Static elements built from the same handle should share identity")
	}
	if e1.staticKey == e3.staticKey {
		t.Error("Static elements built from different handles should not share identity")
	}
}

func TestTransformElementRewritesPlainText(t *testing.T) {
	exclaim := func(s string) string { return s + "!" }
	el := TransformElement(DefaultStyle(), exclaim, Text(DefaultStyle(), "hi"))
	if el.Transform == nil {
		t.Fatal("expected Transform func to be set")
	}
	if got := el.Transform(el.PlainText()); got != "hi!" {
		t.Errorf("got %q", got)
	}
}
