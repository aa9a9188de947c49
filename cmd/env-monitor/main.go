// Command env-monitor samples environmental sensors, rotates a small OLED
// through views of the readings, and sleeps between touches.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/env-monitor/internal/board"
	"github.com/sweeney/env-monitor/internal/controller"
	"github.com/sweeney/env-monitor/internal/display"
	"github.com/sweeney/env-monitor/internal/gpio"
	"github.com/sweeney/env-monitor/internal/logic"
	"github.com/sweeney/env-monitor/internal/power"
	"github.com/sweeney/env-monitor/internal/sensor"
	"github.com/sweeney/env-monitor/internal/status"
	"github.com/sweeney/env-monitor/internal/touch"
)

// envBoard names the board profile label shown in status output.
const envBoard = "ENV_MONITOR_BOARD"

type options struct {
	poll       time.Duration
	warmup     time.Duration
	calPeriod  time.Duration
	printState bool
	controller controller.Config
	power      power.Config
	sensor     sensor.Config
	board      board.Options
}

func main() {
	opts := options{
		controller: controller.DefaultConfig,
		power:      power.DefaultConfig,
		sensor:     sensor.DefaultConfig,
		board:      board.DefaultOptions,
	}

	flag.DurationVar(&opts.poll, "poll", 50*time.Millisecond, "Main loop poll interval")
	flag.DurationVar(&opts.warmup, "warmup", 30*time.Second, "Gas sensor warm-up duration")
	flag.DurationVar(&opts.calPeriod, "cal-period", 500*time.Millisecond, "Gas calibration sample period")
	flag.DurationVar(&opts.controller.SampleInterval, "sample", opts.controller.SampleInterval, "Sensor sample interval")
	flag.DurationVar(&opts.controller.DisplayInterval, "display", opts.controller.DisplayInterval, "Display rotation interval")
	flag.DurationVar(&opts.controller.Heartbeat, "heartbeat", opts.controller.Heartbeat, "Heartbeat log interval (0 to disable)")
	flag.Float64Var(&opts.controller.Thresholds.LowBattery, "low-battery", opts.controller.Thresholds.LowBattery, "Low battery threshold in volts")
	flag.Float64Var(&opts.controller.Thresholds.ChargeMargin, "charge-margin", opts.controller.Thresholds.ChargeMargin, "Solar-over-battery margin in volts for charging")
	flag.DurationVar(&opts.power.IdleThreshold, "idle", opts.power.IdleThreshold, "Idle time before sleeping")
	flag.DurationVar(&opts.power.Quantum, "sleep-quantum", opts.power.Quantum, "Length of one low-power cycle")
	flag.IntVar(&opts.power.Cycles, "sleep-cycles", opts.power.Cycles, "Maximum low-power cycles per sleep")
	flag.Float64Var(&opts.sensor.BatteryDivider, "battery-divider", opts.sensor.BatteryDivider, "Battery sense divider ratio")
	flag.Float64Var(&opts.sensor.SolarDivider, "solar-divider", opts.sensor.SolarDivider, "Solar sense divider ratio")
	flag.StringVar(&opts.board.I2CBus, "i2c", "", "I2C bus name (empty for first available)")
	adcAddr := flag.Uint("adc-addr", uint(opts.board.ADCAddr), "ADS1115 I2C address")
	flag.StringVar(&opts.board.Chip, "chip", opts.board.Chip, "GPIO chip name")
	flag.IntVar(&opts.board.TouchPin, "pin-touch", opts.board.TouchPin, "BCM pin number for the touch pad")
	flag.IntVar(&opts.board.AckPin, "pin-ack", opts.board.AckPin, "BCM pin number for the acknowledgement LED/buzzer")
	flag.BoolVar(&opts.printState, "print-state", false, "Print one sample as JSON and exit")

	flag.Parse()
	opts.board.ADCAddr = uint16(*adcAddr)

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(opts options) error {
	if opts.printState {
		hw, err := board.OpenSensors(opts.board)
		if err != nil {
			return fmt.Errorf("init board: %w", err)
		}
		defer hw.Close()
		fmt.Printf("%s\n", sampleState(hw.Inputs(), opts, time.Now()))
		return nil
	}

	sig := touch.NewSignal()
	hw, err := board.Open(opts.board, sig.Set)
	if err != nil {
		return fmt.Errorf("init board: %w", err)
	}
	defer hw.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	return runMonitor(ctx, opts, monitorDeps{
		inputs:  hw.Inputs(),
		dev:     hw.Display,
		ack:     hw.Ack,
		touch:   sig,
		sleeper: power.TimedWait{Wake: sig.Wake()},
	}, time.Now, ticker.C)
}

// monitorDeps are the hardware-facing collaborators of runMonitor.
type monitorDeps struct {
	inputs  sensor.Inputs
	dev     display.Device
	ack     gpio.Acknowledger
	touch   *touch.Signal
	sleeper power.Sleeper

	// calSleep overrides the calibration wait (tests).
	calSleep func(ctx context.Context, d time.Duration) error
}

func runMonitor(ctx context.Context, opts options, deps monitorDeps, now func() time.Time, tick <-chan time.Time) error {
	startTime := now()
	tracker := status.NewTracker(startTime, statusConfig(opts))

	showCalibrating(deps.dev, opts.warmup)
	reader := sensor.NewReader(deps.inputs, opts.sensor)
	cal := (&sensor.Calibrator{
		Gas:    deps.inputs.Gas,
		Warmup: opts.warmup,
		Period: opts.calPeriod,
		Now:    now,
		Sleep:  deps.calSleep,
	}).Calibrate(ctx)
	reader.SetCalibration(cal)
	tracker.SetCalibration(cal)

	log.Printf("started: sample=%v display=%v idle=%v sleep=%dx%v poll=%v",
		opts.controller.SampleInterval, opts.controller.DisplayInterval,
		opts.power.IdleThreshold, opts.power.Cycles, opts.power.Quantum, opts.poll)

	sched := controller.New(opts.controller, controller.Deps{
		Reader:  reader,
		Rotator: display.NewRotator(deps.dev),
		Touch:   deps.touch,
		Ack:     deps.ack,
		Power:   power.NewManager(opts.power, deps.sleeper, deps.dev, deps.touch),
		Tracker: tracker,
	}, now())

	err := sched.Run(ctx, now, tick)

	log.Printf("shutdown: %s", status.FormatStatusEvent(tracker.Snapshot(now()), "SHUTDOWN"))
	if err := deps.dev.Clear(); err != nil {
		log.Printf("display clear failed: %v", err)
	}
	if err := deps.dev.SetVisible(false); err != nil {
		log.Printf("display off failed: %v", err)
	}
	return err
}

func showCalibrating(dev display.Device, warmup time.Duration) {
	if err := dev.Clear(); err != nil {
		log.Printf("display clear failed: %v", err)
		return
	}
	dev.SetCursor(0, 0)
	dev.Write("Calibrating...")
	dev.SetCursor(0, 1)
	dev.Write(fmt.Sprintf("Wait %v", warmup))
}

// sampleState takes a single uncalibrated sample and formats it as JSON.
func sampleState(in sensor.Inputs, opts options, now time.Time) []byte {
	tracker := status.NewTracker(now, statusConfig(opts))
	r := sensor.NewReader(in, opts.sensor).Sample(now)
	tracker.RecordSample(r, logic.Evaluate(r, opts.controller.Thresholds))
	return status.FormatJSON(tracker.Snapshot(now))
}

func statusConfig(opts options) status.Config {
	return status.Config{
		SampleMs:       opts.controller.SampleInterval.Milliseconds(),
		DisplayMs:      opts.controller.DisplayInterval.Milliseconds(),
		IdleMs:         opts.power.IdleThreshold.Milliseconds(),
		PollMs:         opts.poll.Milliseconds(),
		HeartbeatMs:    opts.controller.Heartbeat.Milliseconds(),
		SleepQuantumMs: opts.power.Quantum.Milliseconds(),
		SleepCycles:    opts.power.Cycles,
		Board:          os.Getenv(envBoard),
	}
}
