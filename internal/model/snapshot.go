package model

// Metric names an environmental reading. The string value doubles as the
// JSON key in persisted records.
type Metric string

const (
	MetricTemperature       Metric = "temp_c"
	MetricHumidity          Metric = "humidity_rh"
	MetricLight             Metric = "light_lux"
	MetricSubstrateMoisture Metric = "substrate_moisture_pct"

	// MetricSubstrateQuality is a 0..1 score evaluated as a secondary
	// heuristic, not against a target range.
	MetricSubstrateQuality Metric = "substrate_quality_score"
)

// TrackedMetrics returns the range-checked metrics in evaluation order.
func TrackedMetrics() []Metric {
	return []Metric{
		MetricTemperature,
		MetricHumidity,
		MetricLight,
		MetricSubstrateMoisture,
	}
}

// Unit returns the display unit for the metric, formatted so it can be
// appended directly after a numeric value.
func (m Metric) Unit() string {
	switch m {
	case MetricTemperature:
		return "°C"
	case MetricHumidity, MetricSubstrateMoisture:
		return "%"
	case MetricLight:
		return " lux"
	default:
		return ""
	}
}

// EnvironmentSnapshot holds the readings measured for one session.
// It is sparse: a missing key means "not measured", and unmeasured metrics
// are never checked against their target ranges.
type EnvironmentSnapshot map[Metric]float64

// Value returns the reading for a metric and whether it was measured.
func (s EnvironmentSnapshot) Value(m Metric) (float64, bool) {
	v, ok := s[m]
	return v, ok
}
