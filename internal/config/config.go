package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all KabuTech configuration.
type Config struct {
	Model   ModelConfig
	Engine  EngineConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// ModelConfig holds classifier model settings.
type ModelConfig struct {
	// Path to the ONNX classification export.
	Path string
	// Classes lists the model's class labels in training order.
	Classes []string
}

// EngineConfig holds recommendation engine settings.
type EngineConfig struct {
	// RulesPath optionally names a YAML rule pack that overrides the
	// built-in severity map, target ranges, and thresholds.
	RulesPath string
	// ConfidenceThreshold overrides the rule pack's confidence gate when
	// non-negative. Negative means "use the rule pack value".
	ConfidenceThreshold float64
}

// OutputConfig holds result destination settings.
type OutputConfig struct {
	// LogPath is the append-only session log (NDJSON).
	LogPath string
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level string // "debug", "info", "warn", "error"
}

// DefaultClasses returns the class labels of the shipped model export, in
// training order.
func DefaultClasses() []string {
	return []string{
		"bacterial_blotch_disease",
		"dry_bubble_disease",
		"green_molds_disease",
		"healthy_fruiting_bag",
		"healthy_mushroom",
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Model: ModelConfig{
			Path:    getenv("KABUTECH_MODEL_PATH", "models/kabutech_cls.onnx"),
			Classes: getenvList("KABUTECH_CLASSES", DefaultClasses()),
		},
		Engine: EngineConfig{
			RulesPath:           os.Getenv("KABUTECH_RULES"),
			ConfidenceThreshold: getenvFloat("KABUTECH_CONFIDENCE_THRESHOLD", -1),
		},
		Output: OutputConfig{
			LogPath: getenv("KABUTECH_LOG_PATH", "kabutech_log.jsonl"),
		},
		Logging: LoggingConfig{
			Level: getenv("KABUTECH_LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// getenvList reads a comma-separated list, trimming whitespace around items.
func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
