package internal

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/env-monitor/internal/controller"
	"github.com/sweeney/env-monitor/internal/display"
	"github.com/sweeney/env-monitor/internal/gpio"
	"github.com/sweeney/env-monitor/internal/logic"
	"github.com/sweeney/env-monitor/internal/power"
	"github.com/sweeney/env-monitor/internal/sensor"
	"github.com/sweeney/env-monitor/internal/status"
	"github.com/sweeney/env-monitor/internal/touch"
)

var startTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// stack is the full monitor wired over fakes: real Reader, Calibrator,
// Rotator, power Manager, Scheduler and Tracker.
type stack struct {
	sched   *controller.Scheduler
	climate *sensor.FakeClimate
	gas     *sensor.FakeInput
	dev     *display.FakeDevice
	pad     *gpio.FakeTouch
	sig     *touch.Signal
	ack     *gpio.FakePulser
	sleeper *power.FakeSleeper
	tracker *status.Tracker
}

// newStack calibrates against a gas baseline of 300 and then reads 350,
// light at half scale, 3.75V battery and 4.50V solar.
func newStack(t *testing.T) *stack {
	t.Helper()
	climate := &sensor.FakeClimate{Temperature: 21.5, Humidity: 40}
	gas := sensor.NewFakeInput(300, 350)
	in := sensor.Inputs{
		Light:   sensor.NewFakeInput(16384),
		Gas:     gas,
		Battery: sensor.NewFakeInput(15000),
		Solar:   sensor.NewFakeInput(12000),
		Climate: climate,
	}

	s := &stack{
		climate: climate,
		gas:     gas,
		dev:     display.NewFakeDevice(display.DefaultCols, display.DefaultRows),
		sig:     touch.NewSignal(),
		ack:     &gpio.FakePulser{},
		sleeper: &power.FakeSleeper{},
		tracker: status.NewTracker(startTime, status.Config{SampleMs: 2000, DisplayMs: 5000}),
	}
	s.pad = gpio.NewFakeTouch(s.sig.Set)

	reader := sensor.NewReader(in, sensor.DefaultConfig)
	cal := (&sensor.Calibrator{
		Gas:    gas,
		Warmup: 0,
		Period: 500 * time.Millisecond,
		Now:    func() time.Time { return startTime },
	}).Calibrate(context.Background())
	reader.SetCalibration(cal)
	s.tracker.SetCalibration(cal)

	s.sched = controller.New(controller.DefaultConfig, controller.Deps{
		Reader:  reader,
		Rotator: display.NewRotator(s.dev),
		Touch:   s.sig,
		Ack:     s.ack,
		Power:   power.NewManager(power.DefaultConfig, s.sleeper, s.dev, s.sig),
		Tracker: s.tracker,
	}, startTime)
	return s
}

func (s *stack) step(offset time.Duration) {
	s.sched.Step(context.Background(), startTime.Add(offset))
}

func assertLines(t *testing.T, dev *display.FakeDevice, want0, want1 string) {
	t.Helper()
	lines := dev.Lines()
	if lines[0] != want0 || lines[1] != want1 {
		t.Errorf("display: got %q / %q, want %q / %q", lines[0], lines[1], want0, want1)
	}
}

// TestIntegrationRotationThroughViews follows the display through a full
// rotation driven only by the display interval.
func TestIntegrationRotationThroughViews(t *testing.T) {
	s := newStack(t)

	s.step(0)
	assertLines(t, s.dev, "Temp: 21.5C", "Hum:  40.0%")

	s.step(5 * time.Second)
	assertLines(t, s.dev, "Light: 50%", "Air: Fair (50)")

	s.step(10 * time.Second)
	assertLines(t, s.dev, "Bat: 3.75V", "Sol: 4.50V CHG")

	s.step(15 * time.Second)
	assertLines(t, s.dev, "System: OK", "Up: 0:00:15")

	s.step(20 * time.Second)
	assertLines(t, s.dev, "Temp: 21.5C", "Hum:  40.0%")

	snap := s.tracker.Snapshot(startTime.Add(20 * time.Second))
	if snap.Counts.Rotations != 4 {
		t.Errorf("rotations: got %d, want 4", snap.Counts.Rotations)
	}
	// One sample at start, then one per 2s interval at 5, 10, 15, 20s.
	if snap.Counts.Samples != 5 {
		t.Errorf("samples: got %d, want 5", snap.Counts.Samples)
	}
	if len(s.sleeper.Quanta) != 0 {
		t.Errorf("unexpected sleep: %v", s.sleeper.Quanta)
	}
}

// TestIntegrationTouchAdvancesView checks a press on the pad advances the
// view immediately and pulses the acknowledgement output once.
func TestIntegrationTouchAdvancesView(t *testing.T) {
	s := newStack(t)
	s.step(0)

	s.pad.Press()
	s.step(1 * time.Second)

	assertLines(t, s.dev, "Light: 50%", "Air: Fair (50)")
	if s.ack.Pulses != 1 {
		t.Errorf("ack pulses: got %d, want 1", s.ack.Pulses)
	}
	if s.sig.Pending() {
		t.Error("touch should be cleared after handling")
	}

	// The display timer restarted at 1s, so 5s is too early to rotate.
	s.step(5 * time.Second)
	assertLines(t, s.dev, "Light: 50%", "Air: Fair (50)")

	s.step(6 * time.Second)
	assertLines(t, s.dev, "Bat: 3.75V", "Sol: 4.50V CHG")
}

// TestIntegrationPressesCoalesce checks that several presses before the
// loop runs count as one interaction.
func TestIntegrationPressesCoalesce(t *testing.T) {
	s := newStack(t)
	s.step(0)

	s.pad.Press()
	s.pad.Press()
	s.pad.Press()
	s.step(time.Second)

	assertLines(t, s.dev, "Light: 50%", "Air: Fair (50)")
	if s.ack.Pulses != 1 {
		t.Errorf("ack pulses: got %d, want 1", s.ack.Pulses)
	}
	snap := s.tracker.Snapshot(startTime.Add(time.Second))
	if snap.Counts.Touches != 1 {
		t.Errorf("touches: got %d, want 1", snap.Counts.Touches)
	}
	if snap.Counts.Coalesced != 2 {
		t.Errorf("coalesced: got %d, want 2", snap.Counts.Coalesced)
	}
}

// TestIntegrationClimateFault checks the fault flows to the display, the
// health state and the status JSON sentinel values.
func TestIntegrationClimateFault(t *testing.T) {
	s := newStack(t)
	s.climate.Fail = true

	s.step(0)
	assertLines(t, s.dev, "Sensor error", "Check T/H sensor")

	for _, at := range []time.Duration{5, 10, 15} {
		s.step(at * time.Second)
	}
	assertLines(t, s.dev, "System: FAULT", "Up: 0:00:15")

	snap := s.tracker.Snapshot(startTime.Add(15 * time.Second))
	if snap.Health.Healthy {
		t.Error("expected unhealthy with a climate fault")
	}

	var doc struct {
		Status struct {
			Reading struct {
				Temperature  float64 `json:"temperature"`
				Humidity     float64 `json:"humidity"`
				ClimateError string  `json:"climate_error"`
			} `json:"reading"`
		} `json:"status"`
	}
	if err := json.Unmarshal(status.FormatJSON(snap), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Status.Reading.Temperature != logic.FaultSentinel {
		t.Errorf("temperature: got %v, want %v", doc.Status.Reading.Temperature, logic.FaultSentinel)
	}
	if doc.Status.Reading.Humidity != logic.FaultSentinel {
		t.Errorf("humidity: got %v, want %v", doc.Status.Reading.Humidity, logic.FaultSentinel)
	}
	if doc.Status.Reading.ClimateError == "" {
		t.Error("expected climate_error in JSON")
	}

	// Recovery clears the fault on the next sample.
	s.climate.Fail = false
	s.step(20 * time.Second)
	assertLines(t, s.dev, "Temp: 21.5C", "Hum:  40.0%")
	if !s.tracker.Snapshot(startTime.Add(20 * time.Second)).Health.Healthy {
		t.Error("expected healthy after the sensor recovers")
	}
}

// TestIntegrationSleepWokenByTouch idles into sleep, presses the pad during
// the second low-power cycle and checks the wake path.
func TestIntegrationSleepWokenByTouch(t *testing.T) {
	s := newStack(t)
	s.sleeper.OnSleep = func(n int) {
		if n == 2 {
			s.pad.Press()
		}
	}

	s.step(0)
	reads := s.climate.Reads

	s.step(31 * time.Second)
	if len(s.sleeper.Quanta) != 2 {
		t.Fatalf("sleep cycles: got %d, want 2", len(s.sleeper.Quanta))
	}
	if got, want := s.dev.VisibleCalls, []bool{false, true}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("visible calls: got %v, want %v", got, want)
	}
	if !s.sig.Pending() {
		t.Fatal("touch should still be pending after waking")
	}
	readsAtSleep := s.climate.Reads

	// The next step resamples immediately and handles the press.
	s.step(31*time.Second + 50*time.Millisecond)
	if s.climate.Reads != readsAtSleep+1 {
		t.Errorf("expected a forced resample after wake: reads %d -> %d", readsAtSleep, s.climate.Reads)
	}
	if readsAtSleep <= reads {
		t.Errorf("expected a sample before sleeping: reads %d -> %d", reads, readsAtSleep)
	}
	if s.ack.Pulses != 1 {
		t.Errorf("ack pulses: got %d, want 1", s.ack.Pulses)
	}
	if len(s.sleeper.Quanta) != 2 {
		t.Errorf("should not sleep again right after a touch, quanta=%d", len(s.sleeper.Quanta))
	}

	snap := s.tracker.Snapshot(startTime.Add(32 * time.Second))
	if snap.Counts.Sleeps != 1 || snap.Counts.TouchWakes != 1 {
		t.Errorf("sleep counts: got sleeps=%d wakes=%d, want 1/1", snap.Counts.Sleeps, snap.Counts.TouchWakes)
	}
}

// TestIntegrationFullSleepWithoutTouch runs every cycle and goes straight
// back to sleep on the following step since nothing reset the idle timer.
func TestIntegrationFullSleepWithoutTouch(t *testing.T) {
	s := newStack(t)

	s.step(0)
	s.step(31 * time.Second)
	if len(s.sleeper.Quanta) != power.DefaultConfig.Cycles {
		t.Fatalf("sleep cycles: got %d, want %d", len(s.sleeper.Quanta), power.DefaultConfig.Cycles)
	}

	reads := s.climate.Reads
	s.step(31*time.Second + 50*time.Millisecond)
	if s.climate.Reads != reads+1 {
		t.Errorf("expected a resample after wake")
	}
	if len(s.sleeper.Quanta) != 2*power.DefaultConfig.Cycles {
		t.Errorf("expected a second sleep, quanta=%d", len(s.sleeper.Quanta))
	}
}

// TestIntegrationTouchAfterClose checks presses are ignored once the pad
// is released.
func TestIntegrationTouchAfterClose(t *testing.T) {
	s := newStack(t)
	s.step(0)

	if err := s.pad.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	s.pad.Press()
	s.step(time.Second)

	assertLines(t, s.dev, "Temp: 21.5C", "Hum:  40.0%")
	if s.ack.Pulses != 0 {
		t.Errorf("ack pulses: got %d, want 0", s.ack.Pulses)
	}
}
