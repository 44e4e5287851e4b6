package engine

import (
	"fmt"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

// Engine maps a classification result and an environment snapshot to a
// severity rating, alerts, and recommended operator actions.
//
// Evaluate is pure: no I/O, no hidden state, total over valid inputs.
// An Engine is safe for concurrent use — it only reads its Ruleset.
type Engine struct {
	rules Ruleset
}

// New creates an Engine that evaluates against the given rules.
func New(rules Ruleset) *Engine {
	return &Engine{rules: rules}
}

// Evaluate produces the recommendation for one classified image.
//
// When confidence is strictly below the configured threshold the
// classification is not trustworthy, so the result degrades to "get better
// input": one low-confidence alert and two retake/monitor actions, with
// environment checks and disease-specific guidance skipped entirely.
// Severity is still looked up and reported on that path.
func (e *Engine) Evaluate(category model.Category, confidence float64, env model.EnvironmentSnapshot) model.Result {
	severity := e.severityFor(category)

	var alerts, actions []string

	// Confidence gate. Equal to the threshold passes.
	if confidence < e.rules.ConfidenceThreshold {
		alerts = append(alerts, fmt.Sprintf("Low confidence (%.2f).", confidence))
		actions = append(actions,
			"Retake photo with better focus and lighting; keep subject centered.",
			"If symptoms persist, isolate and monitor the bag/mushroom.",
		)
		return model.Result{Severity: severity, Alerts: alerts, Actions: actions}
	}

	// Range checks, fixed metric order. Unmeasured metrics are skipped:
	// absence is not an alert condition.
	for _, m := range model.TrackedMetrics() {
		v, ok := env.Value(m)
		if !ok {
			continue
		}
		band, ok := e.rules.Targets[m]
		if !ok {
			continue
		}
		if !band.Contains(v) {
			alerts = append(alerts, fmt.Sprintf("%s out of range: %g%s (target %g-%g%s)",
				m, v, m.Unit(), band.Low, band.High, m.Unit()))
		}
	}

	actions = append(actions, categoryActions(category)...)

	// Secondary substrate-quality heuristic, additive to the checks above.
	if q, ok := env.Value(model.MetricSubstrateQuality); ok && q < e.rules.QualityFloor {
		alerts = append(alerts, fmt.Sprintf("Substrate quality flagged as poor (score < %g).", e.rules.QualityFloor))
		actions = append(actions, "Consider replacing/refreshing substrate and reviewing sterilization/pasteurization.")
	}

	return model.Result{Severity: severity, Alerts: alerts, Actions: actions}
}

// severityFor resolves the configured severity for a category.
// Categories absent from the map resolve to unknown rather than failing.
func (e *Engine) severityFor(category model.Category) model.Severity {
	if s, ok := e.rules.Severity[category]; ok {
		return s
	}
	return model.SeverityUnknown
}

// categoryActions returns the fixed action block for a category. Exactly one
// branch fires per call; healthy and unknown categories share the generic
// monitoring pair.
func categoryActions(category model.Category) []string {
	switch category {
	case model.CategoryGreenMold:
		return []string{
			"HIGH severity: isolate/remove contaminated bag immediately to prevent spread.",
			"Sterilize tools and nearby surfaces.",
			"Reduce overly-wet conditions; increase fresh-air exchange.",
		}
	case model.CategoryDryBubble:
		return []string{
			"MODERATE severity: isolate affected bag.",
			"Avoid direct misting on fruiting bodies; improve airflow.",
			"Sanitize handling area and tools.",
		}
	case model.CategoryBacterialBlotch:
		return []string{
			"MODERATE severity: reduce surface moisture (avoid water droplets on caps).",
			"Increase ventilation; avoid overcrowding.",
			"Sanitize area to reduce bacterial spread.",
		}
	default:
		return []string{
			"No disease detected: continue monitoring.",
			"Maintain chamber conditions within target ranges.",
		}
	}
}
