package gpio

import (
	"errors"
	"testing"
)

func TestFakeTouchPress(t *testing.T) {
	presses := 0
	f := NewFakeTouch(func() { presses++ })

	f.Press()
	f.Press()
	if presses != 2 {
		t.Errorf("presses: got %d, want 2", presses)
	}
}

func TestFakeTouchClose(t *testing.T) {
	presses := 0
	f := NewFakeTouch(func() { presses++ })

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Press()
	if presses != 0 {
		t.Error("press after Close should be ignored")
	}
}

func TestFakePulser(t *testing.T) {
	f := &FakePulser{}
	if err := f.Ack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Pulses != 1 {
		t.Errorf("Pulses: got %d, want 1", f.Pulses)
	}

	f.AckError = errors.New("line busy")
	if err := f.Ack(); err == nil {
		t.Error("expected error")
	}
	if f.Pulses != 1 {
		t.Errorf("failed Ack should not count: got %d", f.Pulses)
	}
}

var (
	_ EdgeWatcher  = (*FakeTouch)(nil)
	_ Acknowledger = (*FakePulser)(nil)
	_ EdgeWatcher  = (*RealTouch)(nil)
	_ Acknowledger = (*RealPulser)(nil)
)
