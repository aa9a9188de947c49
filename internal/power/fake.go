package power

import (
	"context"
	"time"
)

// FakeSleeper records sleep quanta without blocking.
type FakeSleeper struct {
	// Quanta records the duration passed to each Sleep call.
	Quanta []time.Duration

	// OnSleep, if set, runs inside each Sleep call with the 1-based call
	// number. Tests use it to press the touch pad mid-sleep.
	OnSleep func(n int)

	// SleepError, if set, will be returned by Sleep.
	SleepError error
}

// Sleep records d and returns immediately.
func (f *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	f.Quanta = append(f.Quanta, d)
	if f.OnSleep != nil {
		f.OnSleep(len(f.Quanta))
	}
	return f.SleepError
}
