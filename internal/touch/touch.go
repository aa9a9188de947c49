// Package touch holds the single pending-interaction flag shared between the
// GPIO edge handler and the main loop.
package touch

import "sync/atomic"

// Signal is a one-bit pending flag. Set may be called from the edge event
// goroutine at any time; Pending and Clear are called by the main loop.
// Presses that arrive while a press is already pending are coalesced.
type Signal struct {
	pending   atomic.Bool
	coalesced atomic.Uint32
	wake      chan struct{}
}

// NewSignal creates an idle Signal.
func NewSignal() *Signal {
	return &Signal{wake: make(chan struct{}, 1)}
}

// Set marks a press as pending. It never blocks and takes no locks.
func (s *Signal) Set() {
	if !s.pending.CompareAndSwap(false, true) {
		s.coalesced.Add(1)
		return
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether an unconsumed press exists.
func (s *Signal) Pending() bool {
	return s.pending.Load()
}

// Clear consumes the pending press.
func (s *Signal) Clear() {
	// Drop the stale wake token before going idle, so a press landing
	// after the Store always leaves a fresh token behind.
	select {
	case <-s.wake:
	default:
	}
	s.pending.Store(false)
}

// Wake delivers a token whenever Set moves the flag from idle to pending.
// Sleepers select on it to end a low-power wait early.
func (s *Signal) Wake() <-chan struct{} {
	return s.wake
}

// Coalesced returns how many presses were dropped because one was already
// pending.
func (s *Signal) Coalesced() uint32 {
	return s.coalesced.Load()
}
