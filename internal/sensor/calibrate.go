package sensor

import (
	"context"
	"log"
	"time"
)

// Calibrator captures the gas baseline during the startup warm-up.
type Calibrator struct {
	Gas    AnalogInput
	Warmup time.Duration // total warm-up window
	Period time.Duration // spacing between samples

	// Now and Sleep are injectable for tests. Defaults: time.Now and a
	// context-aware timer wait.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Calibrate blocks for the warm-up window, averaging raw gas samples.
// The first sample is taken before any wait, so at least one read is
// always attempted. If no read succeeds the baseline is 0; the result is
// still marked calibrated so the device keeps running.
func (c *Calibrator) Calibrate(ctx context.Context) Calibration {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	sleep := c.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	log.Printf("calibrate: warming up gas sensor for %v", c.Warmup)

	var sum float64
	var count int
	start := now()
	for {
		raw, err := c.Gas.Read()
		if err != nil {
			log.Printf("calibrate: gas read failed: %v", err)
		} else {
			sum += float64(raw)
			count++
		}

		if now().Sub(start) >= c.Warmup {
			break
		}
		if err := sleep(ctx, c.Period); err != nil {
			log.Printf("calibrate: interrupted: %v", err)
			break
		}
		if now().Sub(start) >= c.Warmup {
			break
		}
	}

	cal := Calibration{Calibrated: true, Samples: count}
	if count == 0 {
		log.Printf("calibrate: no gas samples collected, using baseline 0")
		return cal
	}
	cal.Baseline = sum / float64(count)
	log.Printf("calibrate: baseline=%.1f from %d samples", cal.Baseline, count)
	return cal
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
