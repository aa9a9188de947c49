package display

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// OLED presents a character grid on a 128x64 SSD1306 panel using the 7x13
// bitmap font. Each Clear or Write redraws the frame; the driver only sends
// the pages that changed.
type OLED struct {
	dev  *ssd1306.Dev
	grid *Grid
	img  *image1bit.VerticalLSB
}

// OpenOLED initialises the panel on the given bus.
func OpenOLED(bus i2c.Bus, cols, rows int) (*OLED, error) {
	opts := ssd1306.DefaultOpts
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("open ssd1306: %w", err)
	}
	return &OLED{
		dev:  dev,
		grid: NewGrid(cols, rows),
		img:  image1bit.NewVerticalLSB(dev.Bounds()),
	}, nil
}

// Clear blanks the panel.
func (o *OLED) Clear() error {
	o.grid.Clear()
	return o.flush()
}

// SetCursor moves the text cursor.
func (o *OLED) SetCursor(col, row int) {
	o.grid.SetCursor(col, row)
}

// Write prints text at the cursor.
func (o *OLED) Write(s string) error {
	o.grid.Write(s)
	return o.flush()
}

// SetVisible powers the panel down or back up. The controller keeps its
// RAM while halted, and any command brings it back on.
func (o *OLED) SetVisible(on bool) error {
	if !on {
		if err := o.dev.Halt(); err != nil {
			return fmt.Errorf("halt ssd1306: %w", err)
		}
		return nil
	}
	if err := o.dev.Invert(false); err != nil {
		return fmt.Errorf("wake ssd1306: %w", err)
	}
	return nil
}

// Close turns the panel off.
func (o *OLED) Close() error {
	return o.SetVisible(false)
}

func (o *OLED) flush() error {
	b := o.img.Bounds()
	draw.Draw(o.img, b, image.NewUniform(image1bit.Off), image.Point{}, draw.Src)

	_, rows := o.grid.Size()
	pitch := b.Dy() / rows
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  o.img,
		Src:  image.NewUniform(image1bit.On),
		Face: face,
	}
	for row := 0; row < rows; row++ {
		// Vertically centre each text row in its band.
		baseline := row*pitch + (pitch+face.Ascent-face.Descent)/2
		d.Dot = fixed.P(0, baseline)
		d.DrawString(o.grid.Line(row))
	}

	if err := o.dev.Draw(b, o.img, image.Point{}); err != nil {
		return fmt.Errorf("draw ssd1306: %w", err)
	}
	return nil
}
