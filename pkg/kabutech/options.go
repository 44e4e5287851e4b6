package kabutech

import (
	"github.com/EddWithSauce/KabutechMushyModel/internal/config"
	"github.com/EddWithSauce/KabutechMushyModel/internal/engine"
)

type options struct {
	modelPath           string
	classes             []string
	rulesPath           string
	confidenceThreshold float64 // < 0 means "use the rule pack value"
}

// Option configures an Advisor or Evaluator.
type Option func(*options)

// WithModelPath sets the ONNX classification export to load.
// Default: models/kabutech_cls.onnx.
func WithModelPath(path string) Option {
	return func(o *options) { o.modelPath = path }
}

// WithClasses sets the model's class labels in training order. The count
// must match the model's output width. Default: the shipped model's labels.
func WithClasses(classes []string) Option {
	return func(o *options) { o.classes = classes }
}

// WithRulePack loads severity/target/threshold overrides from a YAML rule
// pack. Default: built-in rules only.
func WithRulePack(path string) Option {
	return func(o *options) { o.rulesPath = path }
}

// WithConfidenceThreshold overrides the confidence gate. Predictions
// strictly below the threshold get retake guidance instead of
// disease-specific recommendations. Default: 0.70.
func WithConfidenceThreshold(t float64) Option {
	return func(o *options) { o.confidenceThreshold = t }
}

func defaultOptions() options {
	return options{
		modelPath:           "models/kabutech_cls.onnx",
		classes:             config.DefaultClasses(),
		confidenceThreshold: -1,
	}
}

// resolveRules builds the engine ruleset from the configured options.
func resolveRules(o options) (engine.Ruleset, error) {
	rules, err := engine.LoadRuleset(o.rulesPath)
	if err != nil {
		return engine.Ruleset{}, err
	}
	if o.confidenceThreshold >= 0 {
		rules.ConfidenceThreshold = o.confidenceThreshold
	}
	return rules, nil
}
