// Package sensor samples the physical inputs and turns raw values into a
// logic.Reading.
// The real implementations talk to an ADS1115 ADC and an AHT20 over I2C.
// The fake implementations allow testing without hardware.
package sensor

import (
	"fmt"
	"log"
	"time"

	"github.com/sweeney/env-monitor/internal/logic"
	"github.com/sweeney/env-monitor/internal/mathx"
)

// AnalogInput reads one raw ADC channel.
type AnalogInput interface {
	// Read returns the raw integer sample.
	Read() (int, error)
}

// Climate reads a digital temperature/humidity sensor.
type Climate interface {
	// Read returns temperature (°C) and relative humidity (%).
	// A failed read returns an error wrapping logic.ErrClimateFault.
	Read() (temperature, humidity float64, err error)
}

// Inputs groups the physical inputs sampled on every read.
type Inputs struct {
	Light   AnalogInput
	Gas     AnalogInput
	Battery AnalogInput
	Solar   AnalogInput
	Climate Climate
}

// Config holds the unit-conversion constants for the raw channels.
type Config struct {
	// LightMaxRaw is the raw count mapped to 100% light.
	LightMaxRaw int
	// VoltsPerCount converts a raw count into volts at the ADC pin.
	VoltsPerCount float64
	// BatteryDivider and SolarDivider undo the resistor dividers on the
	// voltage-sense lines.
	BatteryDivider float64
	SolarDivider   float64
}

// DefaultConfig matches an ADS1115 at ±4.096V full scale with 2:1 battery
// and 3:1 solar dividers.
var DefaultConfig = Config{
	LightMaxRaw:    32767,
	VoltsPerCount:  4.096 / 32768,
	BatteryDivider: 2.0,
	SolarDivider:   3.0,
}

// Calibration is the gas baseline captured during warm-up.
type Calibration struct {
	Baseline   float64
	Calibrated bool
	Samples    int
}

// Reader turns one pass over the inputs into a Reading.
type Reader struct {
	in  Inputs
	cfg Config
	cal Calibration
}

// NewReader creates a Reader over the given inputs.
func NewReader(in Inputs, cfg Config) *Reader {
	return &Reader{in: in, cfg: cfg}
}

// SetCalibration installs the gas baseline. Only the first completed
// calibration is accepted; once calibrated, the Reader stays calibrated.
func (r *Reader) SetCalibration(c Calibration) {
	if r.cal.Calibrated || !c.Calibrated {
		return
	}
	r.cal = c
}

// Calibration returns the installed calibration.
func (r *Reader) Calibration() Calibration {
	return r.cal
}

// Sample reads every input once and returns a complete Reading.
// A climate sensor failure degrades the Reading instead of failing it.
func (r *Reader) Sample(now time.Time) logic.Reading {
	reading := logic.Reading{Time: now}

	temp, hum, err := r.in.Climate.Read()
	if err != nil {
		reading.ClimateErr = err
		log.Printf("sensor: climate read failed: %v", err)
	} else {
		reading.Temperature = temp
		reading.Humidity = hum
	}

	reading.LightLevel = r.LightPercent(r.readRaw("light", r.in.Light))
	reading.GasLevel = r.GasLevel(r.readRaw("gas", r.in.Gas))
	reading.BatteryVoltage = r.volts(r.readRaw("battery", r.in.Battery), r.cfg.BatteryDivider)
	reading.SolarVoltage = r.volts(r.readRaw("solar", r.in.Solar), r.cfg.SolarDivider)

	log.Printf("sensor: %s", describe(reading))
	return reading
}

// LightPercent maps a raw light count onto 0..100.
func (r *Reader) LightPercent(raw int) int {
	return mathx.MapRange(raw, 0, r.cfg.LightMaxRaw, 0, 100)
}

// GasLevel subtracts the baseline once calibrated and clamps at zero.
func (r *Reader) GasLevel(raw int) int {
	if !r.cal.Calibrated {
		return max(raw, 0)
	}
	level := int(float64(raw) - r.cal.Baseline)
	return max(level, 0)
}

func (r *Reader) volts(raw int, divider float64) float64 {
	return float64(raw) * r.cfg.VoltsPerCount * divider
}

func (r *Reader) readRaw(name string, in AnalogInput) int {
	v, err := in.Read()
	if err != nil {
		log.Printf("sensor: %s read failed: %v", name, err)
		return 0
	}
	return v
}

func describe(r logic.Reading) string {
	climate := "T=ERR H=ERR"
	if r.HasClimate() {
		climate = fmt.Sprintf("T=%.1fC H=%.1f%%", r.Temperature, r.Humidity)
	}
	return fmt.Sprintf("%s light=%d%% gas=%d bat=%.2fV sol=%.2fV",
		climate, r.LightLevel, r.GasLevel, r.BatteryVoltage, r.SolarVoltage)
}
