package display

// FakeDevice records what would be shown on the panel.
type FakeDevice struct {
	grid *Grid

	// Visible mirrors the last SetVisible call (true initially).
	Visible bool

	// VisibleCalls records every SetVisible argument in order.
	VisibleCalls []bool

	// Clears and Writes count calls.
	Clears int
	Writes int

	// WriteError, if set, will be returned by Write and Clear.
	WriteError error
}

// NewFakeDevice creates a visible, blank FakeDevice.
func NewFakeDevice(cols, rows int) *FakeDevice {
	return &FakeDevice{grid: NewGrid(cols, rows), Visible: true}
}

// Clear blanks the grid.
func (f *FakeDevice) Clear() error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Clears++
	f.grid.Clear()
	return nil
}

// SetCursor moves the cursor.
func (f *FakeDevice) SetCursor(col, row int) {
	f.grid.SetCursor(col, row)
}

// Write stores text at the cursor.
func (f *FakeDevice) Write(s string) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes++
	f.grid.Write(s)
	return nil
}

// SetVisible records the panel state.
func (f *FakeDevice) SetVisible(on bool) error {
	f.Visible = on
	f.VisibleCalls = append(f.VisibleCalls, on)
	return nil
}

// Lines returns the current panel contents.
func (f *FakeDevice) Lines() []string {
	return f.grid.Lines()
}
