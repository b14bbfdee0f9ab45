package tui

import (
	"strings"
	"testing"
)

func decodeAll(t *testing.T, raw string) []InputEvent {
	t.Helper()
	d := newDecoder(strings.NewReader(raw))
	var events []InputEvent
	for {
		ev, err := d.next()
		if err != nil {
			break
		}
		events = append(events, ev)
	}
	return events
}

func TestDecodePlainRune(t *testing.T) {
	events := decodeAll(t, "a")
	if len(events) != 1 || events[0].Key == nil || events[0].Key.Rune != 'a' {
		t.Fatalf("expected a single rune 'a' event, got %#v", events)
	}
}

func TestDecodeArrowKeys(t *testing.T) {
	events := decodeAll(t, "\x1b[A\x1b[B\x1b[C\x1b[D")
	want := []KeyName{KeyUp, KeyDown, KeyRight, KeyLeft}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %#v", len(want), len(events), events)
	}
	for i, w := range want {
		if events[i].Key == nil || events[i].Key.Name != w {
			t.Errorf("event %d: got %#v, want name %d", i, events[i].Key, w)
		}
	}
}

func TestDecodeEnterTabBackspace(t *testing.T) {
	events := decodeAll(t, "\r\t\x7f")
	want := []KeyName{KeyEnter, KeyTab, KeyBackspace}
	for i, w := range want {
		if events[i].Key.Name != w {
			t.Errorf("event %d: got name %d, want %d", i, events[i].Key.Name, w)
		}
	}
}

func TestDecodeCtrlC(t *testing.T) {
	events := decodeAll(t, "\x03")
	if len(events) != 1 || !events[0].Key.Ctrl || events[0].Key.Rune != 'c' {
		t.Fatalf("expected Ctrl+C, got %#v", events[0].Key)
	}
}

func TestDecodeAltKey(t *testing.T) {
	events := decodeAll(t, "\x1bx")
	if len(events) != 1 || !events[0].Key.Alt || events[0].Key.Rune != 'x' {
		t.Fatalf("expected Alt+x, got %#v", events[0].Key)
	}
}

func TestDecodeFunctionKeyTilde(t *testing.T) {
	events := decodeAll(t, "\x1b[15~")
	if len(events) != 1 || events[0].Key.Name != KeyF5 {
		t.Fatalf("expected F5, got %#v", events[0].Key)
	}
}

func TestDecodeSGRMouse(t *testing.T) {
	events := decodeAll(t, "\x1b[<0;10;20M")
	if len(events) != 1 || events[0].Mouse == nil {
		t.Fatalf("expected a mouse event, got %#v", events)
	}
	m := events[0].Mouse
	if m.X != 9 || m.Y != 19 || !m.Pressed {
		t.Errorf("got %+v, want X=9 Y=19 Pressed=true", m)
	}
}

func TestDecodeMultibyteRune(t *testing.T) {
	events := decodeAll(t, "你")
	if len(events) != 1 || events[0].Key.Rune != '你' {
		t.Fatalf("expected single multibyte rune event, got %#v", events)
	}
}
