package power

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sweeney/env-monitor/internal/display"
	"github.com/sweeney/env-monitor/internal/touch"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{IdleThreshold: 30 * time.Second, Quantum: 8 * time.Second, Cycles: 8}
}

func TestShouldSleep(t *testing.T) {
	m := NewManager(testConfig(), &FakeSleeper{}, display.NewFakeDevice(16, 2), touch.NewSignal())

	tests := []struct {
		name    string
		idle    time.Duration
		pending bool
		want    bool
	}{
		{"fresh", 0, false, false},
		{"at threshold", 30 * time.Second, false, false},
		{"past threshold", 30*time.Second + time.Millisecond, false, true},
		{"past threshold with touch", time.Minute, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ShouldSleep(t0.Add(tt.idle), t0, tt.pending); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSleepFullCycles(t *testing.T) {
	sleeper := &FakeSleeper{}
	dev := display.NewFakeDevice(16, 2)
	m := NewManager(testConfig(), sleeper, dev, touch.NewSignal())

	res := m.Sleep(context.Background())

	if res.Cycles != 8 || res.Woken {
		t.Errorf("result: got %+v, want 8 cycles, not woken", res)
	}
	if len(sleeper.Quanta) != 8 {
		t.Fatalf("quanta: got %d, want 8", len(sleeper.Quanta))
	}
	for i, q := range sleeper.Quanta {
		if q != 8*time.Second {
			t.Errorf("quantum %d: got %v, want 8s", i, q)
		}
	}
	if want := []bool{false, true}; !reflect.DeepEqual(dev.VisibleCalls, want) {
		t.Errorf("display visibility: got %v, want %v", dev.VisibleCalls, want)
	}
}

func TestSleepBreaksOnTouch(t *testing.T) {
	sig := touch.NewSignal()
	sleeper := &FakeSleeper{OnSleep: func(n int) {
		if n == 3 {
			sig.Set()
		}
	}}
	dev := display.NewFakeDevice(16, 2)
	m := NewManager(testConfig(), sleeper, dev, sig)

	res := m.Sleep(context.Background())

	if res.Cycles != 3 || !res.Woken {
		t.Errorf("result: got %+v, want 3 cycles, woken", res)
	}
	if !sig.Pending() {
		t.Error("sleep must leave the touch pending for the main loop")
	}
	if !dev.Visible {
		t.Error("display should be visible after waking")
	}
}

func TestSleepStopsOnError(t *testing.T) {
	sleeper := &FakeSleeper{SleepError: context.Canceled}
	m := NewManager(testConfig(), sleeper, display.NewFakeDevice(16, 2), touch.NewSignal())

	res := m.Sleep(context.Background())
	if res.Cycles != 1 {
		t.Errorf("Cycles: got %d, want 1", res.Cycles)
	}
}

func TestTimedWaitExpires(t *testing.T) {
	w := TimedWait{Wake: make(chan struct{})}
	start := time.Now()
	if err := w.Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("returned after %v, want >= 20ms", elapsed)
	}
}

func TestTimedWaitWokenByTouch(t *testing.T) {
	sig := touch.NewSignal()
	w := TimedWait{Wake: sig.Wake()}

	go func() {
		time.Sleep(10 * time.Millisecond)
		sig.Set()
	}()

	start := time.Now()
	if err := w.Sleep(context.Background(), 10*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("wake took %v", elapsed)
	}
	if !sig.Pending() {
		t.Error("touch should still be pending")
	}
}

func TestTimedWaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := TimedWait{}.Sleep(ctx, 10*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
