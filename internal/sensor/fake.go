package sensor

import (
	"errors"

	"github.com/sweeney/env-monitor/internal/logic"
)

// FakeInput is a test double that returns scripted raw samples.
type FakeInput struct {
	// Samples contains scripted raw values to return.
	// Each call to Read() consumes the next sample.
	Samples []int

	// index tracks current position in Samples
	index int

	// Reads counts calls to Read.
	Reads int

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeInput creates a FakeInput with the given samples.
func NewFakeInput(samples ...int) *FakeInput {
	return &FakeInput{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeInput) Read() (int, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	v := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return v, nil
}

// FakeClimate is a test double for the temperature/humidity sensor.
type FakeClimate struct {
	Temperature float64
	Humidity    float64

	// Fail makes Read return logic.ErrClimateFault.
	Fail bool

	Reads int
}

// Read returns the configured values, or a fault.
func (f *FakeClimate) Read() (float64, float64, error) {
	f.Reads++
	if f.Fail {
		return 0, 0, logic.ErrClimateFault
	}
	return f.Temperature, f.Humidity, nil
}

// FakeInputs returns Inputs backed by fakes with fixed raw values.
// Handy for wiring a Reader in tests.
func FakeInputs(light, gas, battery, solar int, temp, hum float64) (Inputs, *FakeClimate) {
	climate := &FakeClimate{Temperature: temp, Humidity: hum}
	return Inputs{
		Light:   NewFakeInput(light),
		Gas:     NewFakeInput(gas),
		Battery: NewFakeInput(battery),
		Solar:   NewFakeInput(solar),
		Climate: climate,
	}, climate
}
