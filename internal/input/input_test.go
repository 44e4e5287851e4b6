package input

import (
	"strings"
	"testing"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

func collect(t *testing.T, answers string) model.EnvironmentSnapshot {
	t.Helper()
	var out strings.Builder
	return Collect(strings.NewReader(answers), &out)
}

func TestCollect_AllProvided(t *testing.T) {
	env := collect(t, "24\n90\n120\n60\n0.8\n")

	want := model.EnvironmentSnapshot{
		model.MetricTemperature:       24,
		model.MetricHumidity:          90,
		model.MetricLight:             120,
		model.MetricSubstrateMoisture: 60,
		model.MetricSubstrateQuality:  0.8,
	}
	if len(env) != len(want) {
		t.Fatalf("got %v, want %v", env, want)
	}
	for m, v := range want {
		if env[m] != v {
			t.Errorf("%s = %v, want %v", m, env[m], v)
		}
	}
}

func TestCollect_BlankSkips(t *testing.T) {
	env := collect(t, "\n90\n\n\n\n")

	if _, ok := env.Value(model.MetricTemperature); ok {
		t.Error("skipped temperature must be absent, not zero")
	}
	if v, ok := env.Value(model.MetricHumidity); !ok || v != 90 {
		t.Errorf("humidity = %v, %v; want 90, true", v, ok)
	}
	if len(env) != 1 {
		t.Errorf("got %d readings, want 1: %v", len(env), env)
	}
}

func TestCollect_MalformedReprompted(t *testing.T) {
	// "abc" is rejected, then 25 is accepted for the same metric.
	env := collect(t, "abc\n25\n\n\n\n\n")

	if v, ok := env.Value(model.MetricTemperature); !ok || v != 25 {
		t.Errorf("temperature = %v, %v; want 25 after re-prompt", v, ok)
	}
}

func TestCollect_QualityScoreRange(t *testing.T) {
	// 1.5 is outside 0..1 and re-prompted; 0.5 accepted.
	env := collect(t, "\n\n\n\n1.5\n0.5\n")

	if v, ok := env.Value(model.MetricSubstrateQuality); !ok || v != 0.5 {
		t.Errorf("quality = %v, %v; want 0.5 after re-prompt", v, ok)
	}
}

func TestCollect_EOFSkipsRemaining(t *testing.T) {
	env := collect(t, "24\n")

	if len(env) != 1 {
		t.Fatalf("got %d readings, want 1: %v", len(env), env)
	}
	if v, ok := env.Value(model.MetricTemperature); !ok || v != 24 {
		t.Errorf("temperature = %v, %v; want 24, true", v, ok)
	}
}

func TestCollect_WhitespaceTrimmed(t *testing.T) {
	env := collect(t, "  24.5  \n\n\n\n\n")

	if v, ok := env.Value(model.MetricTemperature); !ok || v != 24.5 {
		t.Errorf("temperature = %v, %v; want 24.5", v, ok)
	}
}
