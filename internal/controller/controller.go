// Package controller runs the monitor's cooperative main loop: periodic
// sampling, display rotation, touch handling and idle sleep, all driven by
// elapsed-time checks on one goroutine.
package controller

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/env-monitor/internal/display"
	"github.com/sweeney/env-monitor/internal/logic"
	"github.com/sweeney/env-monitor/internal/power"
	"github.com/sweeney/env-monitor/internal/status"
	"github.com/sweeney/env-monitor/internal/touch"
)

// Sampler produces one complete reading.
type Sampler interface {
	Sample(now time.Time) logic.Reading
}

// Acknowledger gives feedback for a handled touch.
type Acknowledger interface {
	Ack() error
}

// Config holds the loop intervals.
type Config struct {
	SampleInterval  time.Duration
	DisplayInterval time.Duration
	Heartbeat       time.Duration // 0 disables heartbeat log lines
	Thresholds      logic.Thresholds
}

// DefaultConfig samples every 2s and rotates the display every 5s.
var DefaultConfig = Config{
	SampleInterval:  2 * time.Second,
	DisplayInterval: 5 * time.Second,
	Heartbeat:       5 * time.Minute,
	Thresholds:      logic.DefaultThresholds,
}

// Deps are the collaborators the loop drives.
type Deps struct {
	Reader  Sampler
	Rotator *display.Rotator
	Touch   *touch.Signal
	Ack     Acknowledger
	Power   *power.Manager
	Tracker *status.Tracker
}

// State is the loop's process-wide state. Only the loop goroutine touches
// it; the touch flag lives in touch.Signal.
type State struct {
	Reading logic.Reading
	Sampled bool
	Health  logic.Health

	// LastSensorRead is zeroed on wake so the next step samples at once.
	LastSensorRead time.Time
	// LastDisplayUpdate restarts on every rotation and touch.
	LastDisplayUpdate time.Time
	// LastInteraction is the idle countdown origin: startup or last touch.
	LastInteraction time.Time
	// Shown is false until the first view has been drawn.
	Shown bool
}

// Scheduler is the main loop.
type Scheduler struct {
	cfg   Config
	deps  Deps
	start time.Time
	state State

	loggedHealth *logic.Health
}

// New creates a Scheduler whose idle countdown starts at start.
func New(cfg Config, deps Deps, start time.Time) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		deps:  deps,
		start: start,
		state: State{
			LastDisplayUpdate: start,
			LastInteraction:   start,
		},
	}
}

// State returns a copy of the loop state.
func (s *Scheduler) State() State {
	return s.state
}

// Mode returns the current display view.
func (s *Scheduler) Mode() display.Mode {
	return s.deps.Rotator.Mode()
}

// Run calls Step on every tick until ctx is done.
func (s *Scheduler) Run(ctx context.Context, now func() time.Time, tick <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			log.Printf("controller: stopping: %v", context.Cause(ctx))
			return nil
		case <-tick:
			s.Step(ctx, now())
		}
	}
}

// Step runs one loop iteration at time now.
func (s *Scheduler) Step(ctx context.Context, now time.Time) {
	st := &s.state

	// 1. Sample when due (or never sampled, or forced after wake).
	if !st.Sampled || now.Sub(st.LastSensorRead) >= s.cfg.SampleInterval {
		r := s.deps.Reader.Sample(now)
		st.Reading = r
		st.Sampled = true
		st.Health = logic.Evaluate(r, s.cfg.Thresholds)
		st.LastSensorRead = now
		s.deps.Tracker.RecordSample(r, st.Health)
	}

	// 2. Rotate when the view has been held long enough.
	if !st.Shown {
		s.render(now)
		st.Shown = true
		st.LastDisplayUpdate = now
	} else if now.Sub(st.LastDisplayUpdate) >= s.cfg.DisplayInterval {
		s.deps.Rotator.Advance()
		s.render(now)
		st.LastDisplayUpdate = now
		s.deps.Tracker.RecordRotation(s.deps.Rotator.Mode().String())
	}

	// 3. Health.
	s.evaluateHealth()

	// 4. Touch, before the sleep decision.
	if s.deps.Touch.Pending() {
		s.handleTouch(now)
	}

	// 5. Sleep when idle with nothing pending.
	if s.deps.Power.ShouldSleep(now, st.LastInteraction, s.deps.Touch.Pending()) {
		res := s.deps.Power.Sleep(ctx)
		st.LastSensorRead = time.Time{}
		s.deps.Tracker.RecordSleep(res.Woken)
	}

	if hb := s.deps.Tracker.CheckHeartbeat(now, s.cfg.Heartbeat); hb != nil {
		log.Printf("heartbeat: %s", status.FormatStatusEvent(*hb, "HEARTBEAT"))
	}
}

func (s *Scheduler) handleTouch(now time.Time) {
	st := &s.state
	s.deps.Rotator.Advance()
	s.render(now)
	if err := s.deps.Ack.Ack(); err != nil {
		log.Printf("touch: ack failed: %v", err)
	}
	st.LastDisplayUpdate = now
	st.LastInteraction = now
	s.deps.Touch.Clear()

	mode := s.deps.Rotator.Mode().String()
	s.deps.Tracker.RecordTouch(mode, int(s.deps.Touch.Coalesced()))
	log.Printf("touch: advanced to %s view", mode)
}

func (s *Scheduler) evaluateHealth() {
	st := &s.state
	if !st.Sampled {
		return
	}
	h := logic.Evaluate(st.Reading, s.cfg.Thresholds)
	if s.loggedHealth == nil || *s.loggedHealth != h {
		log.Printf("health: healthy=%v charging=%v battery=%.2fV solar=%.2fV",
			h.Healthy, h.Charging, st.Reading.BatteryVoltage, st.Reading.SolarVoltage)
		s.loggedHealth = &h
	}
	st.Health = h
	s.deps.Tracker.SetHealth(h)
}

func (s *Scheduler) render(now time.Time) {
	f := display.Frame{
		Reading: s.state.Reading,
		Health:  s.state.Health,
		Uptime:  now.Sub(s.start),
	}
	if err := s.deps.Rotator.Render(f); err != nil {
		log.Printf("display: render failed: %v", err)
	}
}
