package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

func writeRulePack(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write rule pack: %v", err)
	}
	return path
}

func TestDefaultRuleset(t *testing.T) {
	rs := DefaultRuleset()

	assert.Equal(t, 0.70, rs.ConfidenceThreshold)
	assert.Equal(t, 0.6, rs.QualityFloor)
	assert.Equal(t, model.SeverityHigh, rs.Severity[model.CategoryGreenMold])
	assert.Equal(t, TargetRange{Low: 20.0, High: 28.0}, rs.Targets[model.MetricTemperature])

	// Every known category has a severity; every tracked metric has a band.
	for _, cat := range model.Categories() {
		_, ok := rs.Severity[cat]
		assert.True(t, ok, "missing severity for %v", cat)
	}
	for _, m := range model.TrackedMetrics() {
		_, ok := rs.Targets[m]
		assert.True(t, ok, "missing target range for %v", m)
	}
}

func TestLoadRuleset_EmptyPathReturnsDefaults(t *testing.T) {
	rs, err := LoadRuleset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRuleset(), rs)
}

func TestLoadRuleset_MergesOverrides(t *testing.T) {
	path := writeRulePack(t, `
severity:
  green_molds_disease: moderate
targets:
  temp_c:
    low: 18
    high: 30
confidence_threshold: 0.5
quality_floor: 0.7
`)
	rs, err := LoadRuleset(path)
	require.NoError(t, err)

	assert.Equal(t, model.SeverityModerate, rs.Severity[model.CategoryGreenMold])
	assert.Equal(t, TargetRange{Low: 18, High: 30}, rs.Targets[model.MetricTemperature])
	assert.Equal(t, 0.5, rs.ConfidenceThreshold)
	assert.Equal(t, 0.7, rs.QualityFloor)

	// Untouched entries keep their defaults.
	assert.Equal(t, model.SeverityModerate, rs.Severity[model.CategoryDryBubble])
	assert.Equal(t, TargetRange{Low: 85.0, High: 95.0}, rs.Targets[model.MetricHumidity])
}

func TestLoadRuleset_Rejects(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"unknown category", "severity:\n  shiitake_rot: high\n"},
		{"invalid severity", "severity:\n  green_molds_disease: catastrophic\n"},
		{"unknown metric", "targets:\n  co2_ppm:\n    low: 1\n    high: 2\n"},
		{"inverted band", "targets:\n  temp_c:\n    low: 30\n    high: 20\n"},
		{"threshold out of range", "confidence_threshold: 1.5\n"},
		{"quality floor out of range", "quality_floor: -0.1\n"},
		{"malformed yaml", "severity: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRuleset(writeRulePack(t, tc.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadRuleset_MissingFile(t *testing.T) {
	_, err := LoadRuleset(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTargetRangeContains(t *testing.T) {
	band := TargetRange{Low: 20, High: 28}
	assert.True(t, band.Contains(20))
	assert.True(t, band.Contains(28))
	assert.True(t, band.Contains(24))
	assert.False(t, band.Contains(19.999))
	assert.False(t, band.Contains(28.001))
}
