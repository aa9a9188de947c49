// Package logic contains the pure decision logic of the environment monitor:
// health evaluation and air quality classification.
// This package has NO external dependencies (no GPIO, I2C, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"errors"
	"time"
)

// FaultSentinel is the value reported in place of temperature and humidity
// when the climate sensor could not be read.
const FaultSentinel = -999

// ErrClimateFault marks a failed temperature/humidity read.
var ErrClimateFault = errors.New("climate sensor fault")

// Reading is one complete sensor snapshot. It is replaced wholesale on every
// sample; nothing updates individual fields after it is produced.
type Reading struct {
	Time time.Time

	// Temperature (°C) and Humidity (%RH) are only meaningful when
	// ClimateErr is nil.
	Temperature float64
	Humidity    float64
	ClimateErr  error

	LightLevel     int // percent, 0..100
	GasLevel       int // baseline-subtracted, >= 0
	BatteryVoltage float64
	SolarVoltage   float64
}

// HasClimate reports whether temperature and humidity are valid.
func (r Reading) HasClimate() bool {
	return r.ClimateErr == nil
}

// TemperatureOrSentinel returns the temperature, or FaultSentinel on fault.
func (r Reading) TemperatureOrSentinel() float64 {
	if !r.HasClimate() {
		return FaultSentinel
	}
	return r.Temperature
}

// HumidityOrSentinel returns the humidity, or FaultSentinel on fault.
func (r Reading) HumidityOrSentinel() float64 {
	if !r.HasClimate() {
		return FaultSentinel
	}
	return r.Humidity
}

// Thresholds configures health evaluation.
type Thresholds struct {
	LowBattery   float64 // volts; below this the system is unhealthy
	ChargeMargin float64 // volts solar must exceed battery by to count as charging
}

// DefaultThresholds match a single Li-ion cell with a small solar panel.
var DefaultThresholds = Thresholds{
	LowBattery:   3.2,
	ChargeMargin: 0.5,
}

// Health is derived from a Reading and never set independently.
type Health struct {
	Healthy  bool
	Charging bool
}

// AirQuality is the three-bucket gas classification.
type AirQuality string

const (
	AirGood AirQuality = "Good"
	AirFair AirQuality = "Fair"
	AirPoor AirQuality = "Poor"
)
