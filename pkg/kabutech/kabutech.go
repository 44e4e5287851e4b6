package kabutech

import (
	"fmt"
	"os"

	"github.com/EddWithSauce/KabutechMushyModel/internal/classifier"
	"github.com/EddWithSauce/KabutechMushyModel/internal/engine"
	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

// Environment holds optional readings keyed by metric name (see Metric
// constants). Absent keys mean "not measured" and are never checked.
type Environment map[string]float64

// Metric name keys accepted in an Environment.
const (
	MetricTemperature       = string(model.MetricTemperature)
	MetricHumidity          = string(model.MetricHumidity)
	MetricLight             = string(model.MetricLight)
	MetricSubstrateMoisture = string(model.MetricSubstrateMoisture)
	MetricSubstrateQuality  = string(model.MetricSubstrateQuality)
)

// Report is the advisor's output for one image.
type Report struct {
	Class      string   // predicted class label
	Confidence float64  // top-1 confidence in [0,1]
	Severity   string   // "none", "moderate", "high", or "unknown"
	Alerts     []string // detected problems, in evaluation order
	Actions    []string // operator steps, most severe first
}

// Evaluator applies the recommendation rules to an existing classification.
// Use it when the classifier runs elsewhere.
type Evaluator struct {
	engine *engine.Engine
}

// NewEvaluator creates an Evaluator. Only rule-related options apply.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	rules, err := resolveRules(o)
	if err != nil {
		return nil, fmt.Errorf("kabutech: %w", err)
	}
	return &Evaluator{engine: engine.New(rules)}, nil
}

// Evaluate maps a class label, its confidence, and optional readings to a
// Report. It never fails: unknown labels resolve to severity "unknown" and
// generic guidance.
func (e *Evaluator) Evaluate(class string, confidence float64, env Environment) Report {
	res := e.engine.Evaluate(model.ParseCategory(class), confidence, toSnapshot(env))
	return Report{
		Class:      class,
		Confidence: confidence,
		Severity:   string(res.Severity),
		Alerts:     res.Alerts,
		Actions:    res.Actions,
	}
}

// Advisor classifies images with a local ONNX model and evaluates the
// recommendation rules on the result.
type Advisor struct {
	*Evaluator
	classifier classifier.Classifier
}

// New creates an Advisor, loading the ONNX model. This is the expensive
// step — create once, reuse across images.
func New(opts ...Option) (*Advisor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	rules, err := resolveRules(o)
	if err != nil {
		return nil, fmt.Errorf("kabutech: %w", err)
	}

	cls, err := classifier.NewONNX(o.modelPath, o.classes)
	if err != nil {
		return nil, fmt.Errorf("kabutech: %w", err)
	}

	return &Advisor{
		Evaluator:  &Evaluator{engine: engine.New(rules)},
		classifier: cls,
	}, nil
}

// Analyze classifies the image at imagePath and evaluates the rules on the
// prediction. The path must name an existing image file.
func (a *Advisor) Analyze(imagePath string, env Environment) (Report, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return Report{}, fmt.Errorf("kabutech: image %s: %w", imagePath, err)
	}
	pred, err := a.classifier.Classify(imagePath)
	if err != nil {
		return Report{}, fmt.Errorf("kabutech: %w", err)
	}
	return a.Evaluate(pred.Label, pred.Confidence, env), nil
}

// Close releases the model session.
func (a *Advisor) Close() error {
	return a.classifier.Close()
}

func toSnapshot(env Environment) model.EnvironmentSnapshot {
	if env == nil {
		return nil
	}
	snap := make(model.EnvironmentSnapshot, len(env))
	for k, v := range env {
		snap[model.Metric(k)] = v
	}
	return snap
}
