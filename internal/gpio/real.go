//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealTouch watches the touch pad line for rising edges.
type RealTouch struct {
	line *gpiocdev.Line
}

// NewRealTouch requests the touch line as an input with edge detection.
// onPress is called from the gpiocdev event goroutine for every debounced
// rising edge.
func NewRealTouch(chip string, pin int, debounce time.Duration, onPress func()) (*RealTouch, error) {
	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type == gpiocdev.LineEventRisingEdge {
			onPress()
		}
	}

	// Pull-down keeps the line low while the pad module is unpowered.
	line, err := gpiocdev.RequestLine(chip, pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullDown,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithEventHandler(handler),
	)
	if err != nil {
		return nil, fmt.Errorf("request touch pin %d: %w", pin, err)
	}
	return &RealTouch{line: line}, nil
}

// Close releases the touch line.
// Reconfigures the pin to input with pull-down (matching Pi boot defaults)
// before closing.
func (r *RealTouch) Close() error {
	var errs []error
	if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown, gpiocdev.WithoutEdges); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure touch pin: %w", err))
	}
	if err := r.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close touch pin: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealPulser drives the acknowledgement LED/buzzer.
type RealPulser struct {
	line  *gpiocdev.Line
	width time.Duration
	sleep func(time.Duration)
}

// NewRealPulser requests the acknowledgement line as an output, initially low.
func NewRealPulser(chip string, pin int, width time.Duration) (*RealPulser, error) {
	line, err := gpiocdev.RequestLine(chip, pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request ack pin %d: %w", pin, err)
	}
	return &RealPulser{line: line, width: width, sleep: time.Sleep}, nil
}

// Ack drives the line high for the configured width.
func (p *RealPulser) Ack() error {
	if err := p.line.SetValue(1); err != nil {
		return fmt.Errorf("set ack pin high: %w", err)
	}
	p.sleep(p.width)
	if err := p.line.SetValue(0); err != nil {
		return fmt.Errorf("set ack pin low: %w", err)
	}
	return nil
}

// Close drives the line low and releases it.
func (p *RealPulser) Close() error {
	var errs []error
	if err := p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure ack pin: %w", err))
	}
	if err := p.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close ack pin: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
