// Package board brings up the real hardware: the periph.io host drivers,
// the I2C bus with its ADC, climate sensor and OLED, and the GPIO lines.
package board

import (
	"errors"
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/sweeney/env-monitor/internal/display"
	"github.com/sweeney/env-monitor/internal/gpio"
	"github.com/sweeney/env-monitor/internal/sensor"
)

// Options selects buses and pins.
type Options struct {
	I2CBus   string // "" picks the first registered bus
	ADCAddr  uint16
	Chip     string
	TouchPin int
	AckPin   int
	Debounce time.Duration
	AckWidth time.Duration
}

// DefaultOptions match the reference wiring on a Raspberry Pi.
var DefaultOptions = Options{
	ADCAddr:  sensor.DefaultADCAddress,
	Chip:     gpio.DefaultChip,
	TouchPin: gpio.DefaultPinTouch,
	AckPin:   gpio.DefaultPinAck,
	Debounce: gpio.DefaultDebounce,
	AckWidth: gpio.DefaultAckWidth,
}

// Board owns every opened device.
type Board struct {
	ADC     *sensor.ADS1115
	Climate *sensor.AHT20
	Display *display.OLED
	Ack     *gpio.RealPulser
	Touch   *gpio.RealTouch

	bus     i2c.Bus
	closers []io.Closer
}

// OpenSensors brings up the host and the I2C sensors only. Used for
// one-shot reads where the display and GPIO lines are not needed.
func OpenSensors(opts Options) (*Board, error) {
	b := &Board{}
	if err := b.openSensors(opts); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// Open brings up everything. onTouch is called from the GPIO event
// goroutine on each debounced press.
func Open(opts Options, onTouch func()) (*Board, error) {
	b := &Board{}
	if err := b.openSensors(opts); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.openDisplay(b.bus); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.openOutputs(opts, onTouch); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *Board) openSensors(opts Options) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}
	bus, err := i2creg.Open(opts.I2CBus)
	if err != nil {
		return fmt.Errorf("open i2c bus %q: %w", opts.I2CBus, err)
	}
	b.closers = append(b.closers, bus)

	if b.ADC, err = sensor.OpenADS1115(bus, opts.ADCAddr); err != nil {
		return err
	}
	b.closers = append(b.closers, b.ADC)

	if b.Climate, err = sensor.OpenAHT20(bus); err != nil {
		return err
	}
	b.closers = append(b.closers, b.Climate)

	b.bus = bus
	return nil
}

func (b *Board) openDisplay(bus i2c.Bus) error {
	oled, err := display.OpenOLED(bus, display.DefaultCols, display.DefaultRows)
	if err != nil {
		return err
	}
	b.Display = oled
	b.closers = append(b.closers, oled)
	return nil
}

func (b *Board) openOutputs(opts Options, onTouch func()) error {
	ack, err := gpio.NewRealPulser(opts.Chip, opts.AckPin, opts.AckWidth)
	if err != nil {
		return err
	}
	b.Ack = ack
	b.closers = append(b.closers, ack)

	touch, err := gpio.NewRealTouch(opts.Chip, opts.TouchPin, opts.Debounce, onTouch)
	if err != nil {
		return err
	}
	b.Touch = touch
	b.closers = append(b.closers, touch)
	return nil
}

// Inputs returns the sensor inputs for a sensor.Reader.
func (b *Board) Inputs() sensor.Inputs {
	return sensor.Inputs{
		Light:   b.ADC.Light,
		Gas:     b.ADC.Gas,
		Battery: b.ADC.Battery,
		Solar:   b.ADC.Solar,
		Climate: b.Climate,
	}
}

// Close releases devices in reverse order of opening.
func (b *Board) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
