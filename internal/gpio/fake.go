package gpio

// FakeTouch is a test double that delivers edges on demand.
type FakeTouch struct {
	onPress func()

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeTouch creates a FakeTouch that calls onPress for each Press.
func NewFakeTouch(onPress func()) *FakeTouch {
	return &FakeTouch{onPress: onPress}
}

// Press simulates one debounced rising edge.
// Edges after Close are ignored, like a released line.
func (f *FakeTouch) Press() {
	if f.Closed {
		return
	}
	f.onPress()
}

// Close marks the watcher as closed.
func (f *FakeTouch) Close() error {
	f.Closed = true
	return nil
}

// FakePulser records acknowledgement pulses.
type FakePulser struct {
	// Pulses counts successful Ack calls.
	Pulses int

	// AckError, if set, will be returned by Ack.
	AckError error

	// Closed tracks if Close was called
	Closed bool
}

// Ack records one pulse.
func (f *FakePulser) Ack() error {
	if f.AckError != nil {
		return f.AckError
	}
	f.Pulses++
	return nil
}

// Close marks the pulser as closed.
func (f *FakePulser) Close() error {
	f.Closed = true
	return nil
}
