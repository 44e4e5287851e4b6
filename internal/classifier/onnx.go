package classifier

import (
	"fmt"
	"math"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNX classifies images with a classification model exported to ONNX
// (single 4-D image input, single per-class score output). Safe for
// concurrent use.
type ONNX struct {
	session *onnxSession
	classes []string
}

// NewONNX loads the model at modelPath and binds its output indices to the
// given class labels, which must be in the model's training order.
func NewONNX(modelPath string, classes []string) (*ONNX, error) {
	sess, err := newONNXSession(modelPath)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	if int64(len(classes)) != sess.numClasses {
		sess.close()
		return nil, fmt.Errorf("classifier: model emits %d classes, %d labels configured",
			sess.numClasses, len(classes))
	}
	return &ONNX{session: sess, classes: classes}, nil
}

// InputSize returns the square input edge the model expects, in pixels.
func (c *ONNX) InputSize() int {
	return int(c.session.inputSize)
}

// Classify runs top-1 classification on the image at imagePath.
func (c *ONNX) Classify(imagePath string) (Prediction, error) {
	pixels, err := loadPixels(imagePath, c.InputSize())
	if err != nil {
		return Prediction{}, fmt.Errorf("classifier: %w", err)
	}

	scores, err := c.session.infer(pixels)
	if err != nil {
		return Prediction{}, fmt.Errorf("classifier: %w", err)
	}

	probs := normalizeScores(scores)
	idx, conf := argmax(probs)
	label := c.classes[idx]

	return Prediction{
		Category:   model.ParseCategory(label),
		Label:      label,
		Confidence: clamp01(conf),
	}, nil
}

// Close releases the underlying ONNX session.
func (c *ONNX) Close() error {
	return c.session.close()
}

// onnxSession wraps a DynamicAdvancedSession for image classification models.
type onnxSession struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
	inputSize  int64
	numClasses int64
}

// newONNXSession loads the ONNX model and creates an inference session.
// It validates the model's input/output tensor names and shapes.
func newONNXSession(modelPath string) (*onnxSession, error) {
	// Resolve the ONNX Runtime shared library path. We ship it alongside the
	// model file in the models/ directory.
	modelDir := filepath.Dir(modelPath)
	libPath := filepath.Join(modelDir, "libonnxruntime.so")

	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	// Inspect model to discover tensor names and shapes.
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}

	// Validate input — expect one NCHW image tensor with a square spatial size.
	if len(inputs) != 1 {
		return nil, fmt.Errorf("onnx: expected 1 input tensor, got %d", len(inputs))
	}
	inDims := inputs[0].Dimensions
	if len(inDims) != 4 {
		return nil, fmt.Errorf("onnx: expected 4D input tensor, got %v", inDims)
	}
	if inDims[1] != 3 {
		return nil, fmt.Errorf("onnx: expected 3-channel input, got %d channels", inDims[1])
	}
	if inDims[2] != inDims[3] || inDims[2] <= 0 {
		return nil, fmt.Errorf("onnx: expected square input, got %dx%d", inDims[2], inDims[3])
	}

	// Validate output — expect a single [batch, numClasses] score tensor.
	if len(outputs) == 0 {
		return nil, fmt.Errorf("onnx: model has no outputs")
	}
	outDims := outputs[0].Dimensions
	if len(outDims) != 2 {
		return nil, fmt.Errorf("onnx: expected 2D output tensor, got %v", outDims)
	}
	numClasses := outDims[1]
	if numClasses <= 0 {
		return nil, fmt.Errorf("onnx: invalid class count %d", numClasses)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &onnxSession{
		session:    session,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
		inputSize:  inDims[2],
		numClasses: numClasses,
	}, nil
}

// infer runs a single inference call. pixels is a flat [3 * size * size]
// CHW slice. Returns the per-class scores.
func (s *onnxSession) infer(pixels []float32) ([]float32, error) {
	inShape := ort.NewShape(1, 3, s.inputSize, s.inputSize)
	tIn, err := ort.NewTensor(inShape, pixels)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer tIn.Destroy()

	outShape := ort.NewShape(1, s.numClasses)
	tOut, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer tOut.Destroy()

	err = s.session.Run(
		[]ort.Value{tIn},
		[]ort.Value{tOut},
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	// Copy data out before tensor is destroyed.
	src := tOut.GetData()
	result := make([]float32, len(src))
	copy(result, src)
	return result, nil
}

// close releases the ONNX session resources.
func (s *onnxSession) close() error {
	return s.session.Destroy()
}

// normalizeScores converts raw model output to probabilities. Exports that
// already end in a softmax layer emit values in [0,1] summing to ~1; those
// pass through untouched. Anything else gets a softmax.
func normalizeScores(scores []float32) []float64 {
	out := make([]float64, len(scores))
	sum := 0.0
	probLike := true
	for i, s := range scores {
		v := float64(s)
		out[i] = v
		sum += v
		if v < 0 || v > 1 {
			probLike = false
		}
	}
	if probLike && math.Abs(sum-1) < 1e-3 {
		return out
	}

	// Softmax with max subtraction for numeric stability.
	maxV := math.Inf(-1)
	for _, v := range out {
		if v > maxV {
			maxV = v
		}
	}
	sum = 0
	for i, v := range out {
		out[i] = math.Exp(v - maxV)
		sum += out[i]
	}
	if sum == 0 {
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// argmax returns the index and value of the largest probability.
func argmax(probs []float64) (int, float64) {
	best, bestV := 0, math.Inf(-1)
	for i, v := range probs {
		if v > bestV {
			best, bestV = i, v
		}
	}
	return best, bestV
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
