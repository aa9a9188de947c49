package logic

// Evaluate derives the health and charging flags from a reading.
// Unhealthy when the battery is below the low threshold or the climate
// sensor failed. Charging requires solar to exceed battery by strictly more
// than the margin.
func Evaluate(r Reading, th Thresholds) Health {
	healthy := true
	if r.BatteryVoltage < th.LowBattery {
		healthy = false
	}
	if !r.HasClimate() {
		healthy = false
	}
	return Health{
		Healthy:  healthy,
		Charging: r.SolarVoltage > r.BatteryVoltage+th.ChargeMargin,
	}
}

// ClassifyAir buckets a baseline-subtracted gas level.
func ClassifyAir(gas int) AirQuality {
	switch {
	case gas < 50:
		return AirGood
	case gas < 100:
		return AirFair
	default:
		return AirPoor
	}
}
