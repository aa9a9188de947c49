// Package status keeps the monitor's diagnostic counters and the latest
// state for the overview view, heartbeat log lines and --print-state output.
// It is owned by the main loop and is not safe for concurrent use.
package status

import (
	"time"

	"github.com/sweeney/env-monitor/internal/logic"
	"github.com/sweeney/env-monitor/internal/sensor"
)

// Config contains monitor configuration for display.
type Config struct {
	SampleMs       int64
	DisplayMs      int64
	IdleMs         int64
	PollMs         int64
	HeartbeatMs    int64
	SleepQuantumMs int64
	SleepCycles    int
	Board          string // board profile label (empty = unset)
}

// Counts tracks activity since startup.
type Counts struct {
	Samples       int
	ClimateFaults int
	Rotations     int
	Touches       int
	Coalesced     int // presses dropped while one was pending
	Sleeps        int
	TouchWakes    int // sleeps ended early by a touch
}

// Snapshot is a point-in-time view of monitor state.
// It is a value type; later updates do not affect it.
type Snapshot struct {
	Reading     logic.Reading
	Sampled     bool
	Health      logic.Health
	Calibration sensor.Calibration
	Mode        string
	Counts      Counts
	StartTime   time.Time
	Now         time.Time
	Config      Config
}

// Uptime returns the duration since the monitor started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable monitor state.
type Tracker struct {
	snap          Snapshot
	lastHeartbeat time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		lastHeartbeat: startTime,
	}
}

// SetCalibration records the gas baseline.
func (t *Tracker) SetCalibration(c sensor.Calibration) {
	t.snap.Calibration = c
}

// RecordSample stores a new reading and its health.
func (t *Tracker) RecordSample(r logic.Reading, h logic.Health) {
	t.snap.Reading = r
	t.snap.Sampled = true
	t.snap.Health = h
	t.snap.Counts.Samples++
	if !r.HasClimate() {
		t.snap.Counts.ClimateFaults++
	}
}

// SetHealth stores the latest health evaluation.
func (t *Tracker) SetHealth(h logic.Health) {
	t.snap.Health = h
}

// RecordRotation notes that the display moved to mode.
func (t *Tracker) RecordRotation(mode string) {
	t.snap.Mode = mode
	t.snap.Counts.Rotations++
}

// RecordTouch notes a handled touch. coalesced is the running total of
// dropped presses reported by the touch signal.
func (t *Tracker) RecordTouch(mode string, coalesced int) {
	t.snap.Mode = mode
	t.snap.Counts.Touches++
	t.snap.Counts.Coalesced = coalesced
}

// RecordSleep notes one completed sleep.
func (t *Tracker) RecordSleep(woken bool) {
	t.snap.Counts.Sleeps++
	if woken {
		t.snap.Counts.TouchWakes++
	}
}

// Snapshot returns a copy of the monitor state as of now.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	s := t.snap
	s.Now = now
	return s
}

// CheckHeartbeat returns a snapshot if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed
// or if interval is <= 0 (disabled).
func (t *Tracker) CheckHeartbeat(now time.Time, interval time.Duration) *Snapshot {
	if interval <= 0 {
		return nil
	}
	if now.Sub(t.lastHeartbeat) < interval {
		return nil
	}
	t.lastHeartbeat = now
	s := t.Snapshot(now)
	return &s
}
