package tui

import "testing"

type fakeDependent struct {
	notified int
	reads    []signalRef
}

func (f *fakeDependent) notify()               { f.notified++ }
func (f *fakeDependent) trackRead(s signalRef) { f.reads = append(f.reads, s) }

func TestSignalGetSetNotifies(t *testing.T) {
	s := NewSignal(1)
	d := &fakeDependent{}
	trackDependency(d, func() {
		if got := s.Get(); got != 1 {
			t.Fatalf("got %d, want 1", got)
		}
	})
	s.Set(2)
	if d.notified != 1 {
		t.Errorf("expected 1 notification, got %d", d.notified)
	}
}

func TestSignalSetSameValueIsNoop(t *testing.T) {
	s := NewSignal("a")
	d := &fakeDependent{}
	trackDependency(d, func() { s.Get() })
	s.Set("a")
	if d.notified != 0 {
		t.Errorf("setting an equal value should not notify, got %d notifications", d.notified)
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	s := NewSignal(5)
	d := &fakeDependent{}
	trackDependency(d, func() { s.Peek() })
	s.Set(6)
	if d.notified != 0 {
		t.Errorf("Peek should not create a subscription, got %d notifications", d.notified)
	}
}

func TestSignalUnsubscribeStopsNotifications(t *testing.T) {
	s := NewSignal(0)
	d := &fakeDependent{}
	trackDependency(d, func() { s.Get() })
	s.unsubscribe(d)
	s.Set(1)
	if d.notified != 0 {
		t.Errorf("expected no notifications after unsubscribe, got %d", d.notified)
	}
}

func TestSignalUpdate(t *testing.T) {
	s := NewSignal(10)
	s.Update(func(v int) int { return v + 5 })
	if got := s.Peek(); got != 15 {
		t.Errorf("Update result = %d, want 15", got)
	}
}
