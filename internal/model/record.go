package model

import (
	"math"
	"time"
)

// TimestampLayout is the local, second-precision timestamp format used in
// persisted records.
const TimestampLayout = "2006-01-02T15:04:05"

// SessionRecord is the immutable record assembled once per inference
// session and appended to the log. Field names match the historical log
// format, so existing log consumers keep working.
type SessionRecord struct {
	Timestamp      string              `json:"timestamp"`
	Image          string              `json:"image"`
	PredictedClass string              `json:"predicted_class"`
	Confidence     float64             `json:"confidence"`
	Severity       Severity            `json:"severity"`
	Environment    EnvironmentSnapshot `json:"environment"`
	Alerts         []string            `json:"alerts"`
	Actions        []string            `json:"actions"`
}

// NewSessionRecord assembles the persisted record for one session.
// Confidence is rounded to 4 decimal digits before persistence.
func NewSessionRecord(ts time.Time, image, predictedClass string, confidence float64, env EnvironmentSnapshot, res Result) SessionRecord {
	alerts := res.Alerts
	if alerts == nil {
		alerts = []string{}
	}
	actions := res.Actions
	if actions == nil {
		actions = []string{}
	}
	if env == nil {
		env = EnvironmentSnapshot{}
	}
	return SessionRecord{
		Timestamp:      ts.Format(TimestampLayout),
		Image:          image,
		PredictedClass: predictedClass,
		Confidence:     math.Round(confidence*1e4) / 1e4,
		Severity:       res.Severity,
		Environment:    env,
		Alerts:         alerts,
		Actions:        actions,
	}
}
