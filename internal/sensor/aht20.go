package sensor

import (
	"fmt"
	"math"

	"github.com/sweeney/env-monitor/internal/logic"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/aht20"
)

// AHT20 reads temperature and humidity from an AHT20 over I2C.
type AHT20 struct {
	dev *aht20.Dev
}

// OpenAHT20 initialises the sensor, calibrating it if needed.
func OpenAHT20(bus i2c.Bus) (*AHT20, error) {
	dev, err := aht20.NewI2C(bus, nil)
	if err != nil {
		return nil, fmt.Errorf("open aht20: %w", err)
	}
	return &AHT20{dev: dev}, nil
}

// Read returns temperature in °C and relative humidity in percent.
// Bus errors, corrupt frames and NaN results all surface as
// logic.ErrClimateFault.
func (a *AHT20) Read() (float64, float64, error) {
	var e physic.Env
	if err := a.dev.Sense(&e); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", logic.ErrClimateFault, err)
	}
	temp := float64(e.Temperature-physic.ZeroCelsius) / float64(physic.Kelvin)
	hum := float64(e.Humidity) / float64(physic.PercentRH)
	if math.IsNaN(temp) || math.IsNaN(hum) {
		return 0, 0, fmt.Errorf("%w: NaN reading", logic.ErrClimateFault)
	}
	return temp, hum, nil
}

// Close stops any continuous sensing.
func (a *AHT20) Close() error {
	return a.dev.Halt()
}
