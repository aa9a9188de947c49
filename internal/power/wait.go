package power

import (
	"context"
	"time"
)

// TimedWait is the Linux stand-in for a hardware power-down: a timed wait
// that ends early when a wake token arrives or ctx is done.
type TimedWait struct {
	Wake <-chan struct{}
}

// Sleep waits for d, a wake token, or ctx cancellation.
// A consumed wake token is not put back; callers re-check the touch flag.
func (w TimedWait) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.Wake:
		return nil
	case <-t.C:
		return nil
	}
}
