package classifier

import (
	"math"
	"os"
	"testing"
)

const testModelPath = "../../models/kabutech_cls.onnx"

func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); os.IsNotExist(err) {
		t.Skip("model files not found; run 'make download-model' first")
	}
}

func TestONNXSessionLoad(t *testing.T) {
	skipIfNoModel(t)

	sess, err := newONNXSession(testModelPath)
	if err != nil {
		t.Fatalf("failed to load ONNX session: %v", err)
	}
	defer sess.close()

	if sess.inputSize <= 0 {
		t.Errorf("expected positive input size, got %d", sess.inputSize)
	}
	if sess.numClasses <= 0 {
		t.Errorf("expected positive class count, got %d", sess.numClasses)
	}

	t.Logf("input: %s (%dx%d)", sess.inputName, sess.inputSize, sess.inputSize)
	t.Logf("output: %s (%d classes)", sess.outputName, sess.numClasses)
}

func TestNormalizeScores_PassthroughProbabilities(t *testing.T) {
	probs := normalizeScores([]float32{0.1, 0.7, 0.2})
	want := []float64{0.1, 0.7, 0.2}
	for i := range want {
		if math.Abs(probs[i]-want[i]) > 1e-6 {
			t.Fatalf("probs[%d] = %v, want %v (should pass through)", i, probs[i], want[i])
		}
	}
}

func TestNormalizeScores_SoftmaxesLogits(t *testing.T) {
	probs := normalizeScores([]float32{2.0, 1.0, -1.0})

	sum := 0.0
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("probability %v outside [0,1]", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Fatalf("probabilities sum to %v, want 1", sum)
	}
	if !(probs[0] > probs[1] && probs[1] > probs[2]) {
		t.Fatalf("softmax must preserve order: %v", probs)
	}
}

func TestNormalizeScores_LargeLogitsStable(t *testing.T) {
	probs := normalizeScores([]float32{1000, 999, 998})
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("probs[%d] = %v, want finite", i, p)
		}
	}
	if probs[0] <= probs[1] {
		t.Fatalf("order lost: %v", probs)
	}
}

func TestArgmax(t *testing.T) {
	idx, v := argmax([]float64{0.05, 0.9, 0.05})
	if idx != 1 || v != 0.9 {
		t.Fatalf("argmax = (%d, %v), want (1, 0.9)", idx, v)
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 0}, {0, 0}, {0.42, 0.42}, {1, 1}, {1.5, 1},
	}
	for _, tc := range cases {
		if got := clamp01(tc.in); got != tc.want {
			t.Errorf("clamp01(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
