// Package power decides when the monitor goes idle and runs the bounded
// low-power sleep.
package power

import (
	"context"
	"log"
	"time"
)

// Sleeper blocks for one low-power quantum. It may return early when woken
// or when ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Panel is the part of the display the power manager switches.
type Panel interface {
	SetVisible(on bool) error
}

// PendingChecker reports whether a touch is waiting to be handled.
type PendingChecker interface {
	Pending() bool
}

// Config holds the sleep timings.
type Config struct {
	// IdleThreshold is how long without interaction before sleeping.
	IdleThreshold time.Duration
	// Quantum is the length of one low-power cycle.
	Quantum time.Duration
	// Cycles bounds how many quanta one Sleep call may take.
	Cycles int
}

// DefaultConfig sleeps up to 8 × 8s after 30s without interaction.
var DefaultConfig = Config{
	IdleThreshold: 30 * time.Second,
	Quantum:       8 * time.Second,
	Cycles:        8,
}

// Result describes one completed sleep.
type Result struct {
	Cycles int  // quanta actually slept
	Woken  bool // ended early by a touch
}

// Manager runs the idle decision and the sleep sequence.
type Manager struct {
	cfg     Config
	sleeper Sleeper
	panel   Panel
	touch   PendingChecker
}

// NewManager creates a Manager.
func NewManager(cfg Config, sleeper Sleeper, panel Panel, touch PendingChecker) *Manager {
	return &Manager{cfg: cfg, sleeper: sleeper, panel: panel, touch: touch}
}

// ShouldSleep reports whether the idle threshold has been exceeded since the
// last interaction with no touch waiting.
func (m *Manager) ShouldSleep(now, lastInteraction time.Time, pending bool) bool {
	if pending {
		return false
	}
	return now.Sub(lastInteraction) > m.cfg.IdleThreshold
}

// Sleep blanks the panel and sleeps up to Cycles quanta, stopping after any
// quantum that ends with a touch pending. The panel is switched back on
// before returning.
func (m *Manager) Sleep(ctx context.Context) Result {
	log.Printf("power: entering sleep (%d x %v)", m.cfg.Cycles, m.cfg.Quantum)
	if err := m.panel.SetVisible(false); err != nil {
		log.Printf("power: display off failed: %v", err)
	}

	var res Result
	for res.Cycles < m.cfg.Cycles {
		err := m.sleeper.Sleep(ctx, m.cfg.Quantum)
		res.Cycles++
		if m.touch.Pending() {
			res.Woken = true
			break
		}
		if err != nil {
			log.Printf("power: sleep interrupted: %v", err)
			break
		}
	}

	if err := m.panel.SetVisible(true); err != nil {
		log.Printf("power: display on failed: %v", err)
	}
	log.Printf("power: awake after %d cycles (touch=%v)", res.Cycles, res.Woken)
	return res
}
