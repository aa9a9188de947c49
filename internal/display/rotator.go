package display

import (
	"fmt"
	"time"

	"github.com/sweeney/env-monitor/internal/logic"
)

// Mode selects one of the fixed views.
type Mode int

const (
	ModeClimate Mode = iota
	ModeLightAir
	ModePower
	ModeOverview

	// ViewCount is the number of views in the rotation.
	ViewCount = 4
)

func (m Mode) String() string {
	switch m {
	case ModeClimate:
		return "climate"
	case ModeLightAir:
		return "light/air"
	case ModePower:
		return "power"
	case ModeOverview:
		return "overview"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Frame is everything a view may show.
type Frame struct {
	Reading logic.Reading
	Health  logic.Health
	Uptime  time.Duration
}

// Rotator owns the current view and draws it on a Device.
type Rotator struct {
	dev  Device
	mode Mode
}

// NewRotator starts on the climate view.
func NewRotator(dev Device) *Rotator {
	return &Rotator{dev: dev}
}

// Mode returns the current view.
func (r *Rotator) Mode() Mode {
	return r.mode
}

// Advance moves to the next view, wrapping after the last.
func (r *Rotator) Advance() {
	r.mode = (r.mode + 1) % ViewCount
}

// Render draws the current view. Rendering the same mode and Frame twice
// leaves the panel in the same state.
func (r *Rotator) Render(f Frame) error {
	if err := r.dev.Clear(); err != nil {
		return fmt.Errorf("clear display: %w", err)
	}
	for row, line := range Lines(r.mode, f) {
		r.dev.SetCursor(0, row)
		if err := r.dev.Write(line); err != nil {
			return fmt.Errorf("write %s view: %w", r.mode, err)
		}
	}
	return nil
}

// Lines formats the text rows of a view.
func Lines(m Mode, f Frame) [DefaultRows]string {
	r := f.Reading
	switch m {
	case ModeClimate:
		if !r.HasClimate() {
			return [DefaultRows]string{"Sensor error", "Check T/H sensor"}
		}
		return [DefaultRows]string{
			fmt.Sprintf("Temp: %.1fC", r.Temperature),
			fmt.Sprintf("Hum:  %.1f%%", r.Humidity),
		}
	case ModeLightAir:
		return [DefaultRows]string{
			fmt.Sprintf("Light: %d%%", r.LightLevel),
			fmt.Sprintf("Air: %s (%d)", logic.ClassifyAir(r.GasLevel), r.GasLevel),
		}
	case ModePower:
		sol := fmt.Sprintf("Sol: %.2fV", r.SolarVoltage)
		if f.Health.Charging {
			sol += " CHG"
		}
		return [DefaultRows]string{fmt.Sprintf("Bat: %.2fV", r.BatteryVoltage), sol}
	default:
		state := "OK"
		if !f.Health.Healthy {
			state = "FAULT"
		}
		return [DefaultRows]string{"System: " + state, "Up: " + FormatUptime(f.Uptime)}
	}
}

// FormatUptime renders a duration as H:MM:SS with unbounded hours.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}
