// Package gpio provides the touch-pad edge interrupt and the acknowledgement
// output with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "time"

// EdgeWatcher delivers touch edges to a handler on its own goroutine until
// closed. The handler must only flip a flag; it must never block.
type EdgeWatcher interface {
	// Close stops edge delivery and releases the line.
	Close() error
}

// Acknowledger gives brief feedback that a touch was handled.
type Acknowledger interface {
	// Ack pulses the feedback output once.
	Ack() error

	// Close releases the output line.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinTouch = 17 // capacitive touch pad output (TTP223)
	DefaultPinAck   = 27 // LED/buzzer
)

// DefaultChip is the GPIO character device on Raspberry Pi boards.
const DefaultChip = "gpiochip0"

// Default timings.
const (
	DefaultDebounce = 20 * time.Millisecond
	DefaultAckWidth = 60 * time.Millisecond
)
