package classifier

import "github.com/EddWithSauce/KabutechMushyModel/internal/model"

// Prediction is the classifier's verdict for one image.
type Prediction struct {
	// Category is the parsed closed-set category; unrecognized labels
	// resolve to model.CategoryUnknown.
	Category model.Category
	// Label is the raw class label the model emitted.
	Label string
	// Confidence is the top-1 score in [0,1].
	Confidence float64
}

// Classifier is the consumed classification capability: one image reference
// in, one labeled prediction out. The session orchestrator treats any
// implementation — the ONNX model, a stub, a test double — as
// interchangeable.
type Classifier interface {
	Classify(imagePath string) (Prediction, error)
	Close() error
}
