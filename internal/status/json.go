package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/env-monitor/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string          `json:"event,omitempty"`
	Ready         bool            `json:"ready"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	StartTime     string          `json:"start_time"`
	Timestamp     string          `json:"timestamp"`
	Mode          string          `json:"mode,omitempty"`
	Reading       *ReadingJSON    `json:"reading,omitempty"`
	Health        HealthJSON      `json:"health"`
	Calibration   CalibrationJSON `json:"calibration"`
	Counts        CountsJSON      `json:"counts"`
	Config        ConfigJSON      `json:"config"`
}

// ReadingJSON is the JSON representation of a reading.
// Temperature and humidity carry -999 when the climate sensor failed.
type ReadingJSON struct {
	Timestamp      string  `json:"timestamp"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	ClimateError   string  `json:"climate_error,omitempty"`
	LightLevel     int     `json:"light_level"`
	GasLevel       int     `json:"gas_level"`
	AirQuality     string  `json:"air_quality"`
	BatteryVoltage float64 `json:"battery_voltage"`
	SolarVoltage   float64 `json:"solar_voltage"`
}

// HealthJSON is the JSON representation of derived health.
type HealthJSON struct {
	Healthy  bool `json:"healthy"`
	Charging bool `json:"charging"`
}

// CalibrationJSON is the JSON representation of the gas baseline.
type CalibrationJSON struct {
	Calibrated bool    `json:"calibrated"`
	Baseline   float64 `json:"baseline"`
	Samples    int     `json:"samples"`
}

// CountsJSON is the JSON representation of activity counters.
type CountsJSON struct {
	Samples       int `json:"samples"`
	ClimateFaults int `json:"climate_faults"`
	Rotations     int `json:"rotations"`
	Touches       int `json:"touches"`
	Coalesced     int `json:"coalesced_touches"`
	Sleeps        int `json:"sleeps"`
	TouchWakes    int `json:"touch_wakes"`
}

// ConfigJSON is the JSON representation of monitor config.
type ConfigJSON struct {
	SampleMs       int64  `json:"sample_ms"`
	DisplayMs      int64  `json:"display_ms"`
	IdleMs         int64  `json:"idle_ms"`
	PollMs         int64  `json:"poll_ms"`
	HeartbeatMs    int64  `json:"heartbeat_ms"`
	SleepQuantumMs int64  `json:"sleep_quantum_ms"`
	SleepCycles    int    `json:"sleep_cycles"`
	Board          string `json:"board,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Ready:         snap.Sampled && snap.Calibration.Calibrated,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Mode:          snap.Mode,
		Health:        HealthJSON{Healthy: snap.Health.Healthy, Charging: snap.Health.Charging},
		Calibration: CalibrationJSON{
			Calibrated: snap.Calibration.Calibrated,
			Baseline:   snap.Calibration.Baseline,
			Samples:    snap.Calibration.Samples,
		},
		Counts: CountsJSON{
			Samples:       snap.Counts.Samples,
			ClimateFaults: snap.Counts.ClimateFaults,
			Rotations:     snap.Counts.Rotations,
			Touches:       snap.Counts.Touches,
			Coalesced:     snap.Counts.Coalesced,
			Sleeps:        snap.Counts.Sleeps,
			TouchWakes:    snap.Counts.TouchWakes,
		},
		Config: ConfigJSON{
			SampleMs:       snap.Config.SampleMs,
			DisplayMs:      snap.Config.DisplayMs,
			IdleMs:         snap.Config.IdleMs,
			PollMs:         snap.Config.PollMs,
			HeartbeatMs:    snap.Config.HeartbeatMs,
			SleepQuantumMs: snap.Config.SleepQuantumMs,
			SleepCycles:    snap.Config.SleepCycles,
			Board:          snap.Config.Board,
		},
	}

	if snap.Sampled {
		r := snap.Reading
		rj := &ReadingJSON{
			Timestamp:      r.Time.UTC().Format(time.RFC3339),
			Temperature:    r.TemperatureOrSentinel(),
			Humidity:       r.HumidityOrSentinel(),
			LightLevel:     r.LightLevel,
			GasLevel:       r.GasLevel,
			AirQuality:     string(logic.ClassifyAir(r.GasLevel)),
			BatteryVoltage: r.BatteryVoltage,
			SolarVoltage:   r.SolarVoltage,
		}
		if r.ClimateErr != nil {
			rj.ClimateError = r.ClimateErr.Error()
		}
		inner.Reading = rj
	}
	return inner
}

// FormatJSON returns the indented JSON status (used by --print-state).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns single-line JSON status tagged with an event
// name, for heartbeat and lifecycle log lines.
func FormatStatusEvent(snap Snapshot, event string) []byte {
	inner := buildInner(snap)
	inner.Event = event

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
