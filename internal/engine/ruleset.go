package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

// TargetRange is the inclusive acceptable band for an environmental metric.
type TargetRange struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Contains reports whether v lies within the band. Both bounds inclusive.
func (r TargetRange) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Ruleset is the read-only rule configuration the engine evaluates against:
// category severities, target ranges for the tracked metrics, the confidence
// gate threshold, and the substrate-quality floor. It is loaded once at
// startup and never mutated afterwards.
type Ruleset struct {
	Severity            map[model.Category]model.Severity
	Targets             map[model.Metric]TargetRange
	ConfidenceThreshold float64
	QualityFloor        float64
}

// DefaultRuleset returns the built-in rules for oyster/button mushroom
// cultivation. Target bands follow the grower references the model was
// trained against.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Severity: map[model.Category]model.Severity{
			model.CategoryBacterialBlotch:    model.SeverityModerate,
			model.CategoryDryBubble:          model.SeverityModerate,
			model.CategoryGreenMold:          model.SeverityHigh,
			model.CategoryHealthyFruitingBag: model.SeverityNone,
			model.CategoryHealthyMushroom:    model.SeverityNone,
		},
		Targets: map[model.Metric]TargetRange{
			model.MetricTemperature:       {Low: 20.0, High: 28.0},
			model.MetricHumidity:          {Low: 85.0, High: 95.0},
			model.MetricLight:             {Low: 50.0, High: 300.0},
			model.MetricSubstrateMoisture: {Low: 55.0, High: 65.0},
		},
		ConfidenceThreshold: 0.70,
		QualityFloor:        0.6,
	}
}

// rulesetFile is the YAML rule-pack schema. All sections are optional;
// present entries override the defaults.
type rulesetFile struct {
	Severity            map[string]string      `yaml:"severity"`
	Targets             map[string]TargetRange `yaml:"targets"`
	ConfidenceThreshold *float64               `yaml:"confidence_threshold"`
	QualityFloor        *float64               `yaml:"quality_floor"`
}

// LoadRuleset returns DefaultRuleset with overrides from the YAML rule pack
// at path merged in. An empty path returns the defaults unchanged.
func LoadRuleset(path string) (Ruleset, error) {
	rs := DefaultRuleset()
	if path == "" {
		return rs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("ruleset: read %s: %w", path, err)
	}
	var f rulesetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Ruleset{}, fmt.Errorf("ruleset: parse %s: %w", path, err)
	}

	for label, sev := range f.Severity {
		cat := model.ParseCategory(label)
		if cat == model.CategoryUnknown {
			return Ruleset{}, fmt.Errorf("ruleset: unknown category %q", label)
		}
		switch s := model.Severity(sev); s {
		case model.SeverityNone, model.SeverityModerate, model.SeverityHigh, model.SeverityUnknown:
			rs.Severity[cat] = s
		default:
			return Ruleset{}, fmt.Errorf("ruleset: invalid severity %q for %q", sev, label)
		}
	}

	for name, tr := range f.Targets {
		m := model.Metric(name)
		if _, ok := rs.Targets[m]; !ok {
			return Ruleset{}, fmt.Errorf("ruleset: unknown metric %q", name)
		}
		if tr.Low > tr.High {
			return Ruleset{}, fmt.Errorf("ruleset: metric %q: low %g > high %g", name, tr.Low, tr.High)
		}
		rs.Targets[m] = tr
	}

	if f.ConfidenceThreshold != nil {
		t := *f.ConfidenceThreshold
		if t < 0 || t > 1 {
			return Ruleset{}, fmt.Errorf("ruleset: confidence_threshold %g outside [0,1]", t)
		}
		rs.ConfidenceThreshold = t
	}
	if f.QualityFloor != nil {
		q := *f.QualityFloor
		if q < 0 || q > 1 {
			return Ruleset{}, fmt.Errorf("ruleset: quality_floor %g outside [0,1]", q)
		}
		rs.QualityFloor = q
	}

	return rs, nil
}
