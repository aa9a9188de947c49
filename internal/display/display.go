// Package display drives the character-grid display: a device abstraction,
// the real SSD1306 OLED, a fake for tests, and the view rotator.
package display

// Device is a character-grid display.
type Device interface {
	// Clear blanks every cell and homes the cursor.
	Clear() error
	// SetCursor moves the cursor; positions outside the grid are clamped.
	SetCursor(col, row int)
	// Write prints text at the cursor. Text past the row end is dropped.
	Write(s string) error
	// SetVisible switches the panel on or off without losing its contents.
	SetVisible(on bool) error
}

// Default grid size: two 16-character rows, like a 1602 module.
const (
	DefaultCols = 16
	DefaultRows = 2
)
