//go:build !linux

package gpio

import (
	"errors"
	"time"
)

// RealTouch is not available on non-Linux platforms.
type RealTouch struct{}

// NewRealTouch returns an error on non-Linux platforms.
func NewRealTouch(chip string, pin int, debounce time.Duration, onPress func()) (*RealTouch, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Close is not implemented on non-Linux platforms.
func (r *RealTouch) Close() error {
	return nil
}

// RealPulser is not available on non-Linux platforms.
type RealPulser struct{}

// NewRealPulser returns an error on non-Linux platforms.
func NewRealPulser(chip string, pin int, width time.Duration) (*RealPulser, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Ack is not implemented on non-Linux platforms.
func (p *RealPulser) Ack() error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (p *RealPulser) Close() error {
	return nil
}
