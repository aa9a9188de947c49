package sensor

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADS1115 channel wiring.
const (
	ChannelLight   = ads1x15.Channel0
	ChannelGas     = ads1x15.Channel1
	ChannelBattery = ads1x15.Channel2
	ChannelSolar   = ads1x15.Channel3
)

// DefaultADCAddress is the ADS1115 address with ADDR tied to GND.
const DefaultADCAddress = 0x48

// ADCChannel is one single-ended ADS1115 input.
type ADCChannel struct {
	name string
	pin  analog.PinADC
}

// Read returns the raw conversion count.
func (c *ADCChannel) Read() (int, error) {
	s, err := c.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read %s channel: %w", c.name, err)
	}
	return int(s.Raw), nil
}

// ADS1115 owns the four analog sense channels.
type ADS1115 struct {
	Light   *ADCChannel
	Gas     *ADCChannel
	Battery *ADCChannel
	Solar   *ADCChannel
}

// OpenADS1115 configures the four channels at ±4.096V full scale.
func OpenADS1115(bus i2c.Bus, addr uint16) (*ADS1115, error) {
	if addr == 0 {
		addr = DefaultADCAddress
	}
	opts := ads1x15.DefaultOpts
	opts.I2cAddress = addr
	dev, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("open ads1115 at 0x%02x: %w", addr, err)
	}

	a := &ADS1115{}
	chans := []struct {
		name string
		ch   ads1x15.Channel
		dst  **ADCChannel
	}{
		{"light", ChannelLight, &a.Light},
		{"gas", ChannelGas, &a.Gas},
		{"battery", ChannelBattery, &a.Battery},
		{"solar", ChannelSolar, &a.Solar},
	}
	for _, c := range chans {
		pin, err := dev.PinForChannel(c.ch, 4096*physic.MilliVolt, 128*physic.Hertz, ads1x15.BestQuality)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("configure %s channel: %w", c.name, err)
		}
		*c.dst = &ADCChannel{name: c.name, pin: pin}
	}
	return a, nil
}

// Close halts every configured channel.
func (a *ADS1115) Close() error {
	var errs []error
	for _, c := range []*ADCChannel{a.Light, a.Gas, a.Battery, a.Solar} {
		if c == nil {
			continue
		}
		if err := c.pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt %s channel: %w", c.name, err))
		}
	}
	return errors.Join(errs...)
}
