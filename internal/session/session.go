// Package session connects the classifier, the recommendation engine, and
// the output sinks into one-shot inference sessions.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/EddWithSauce/KabutechMushyModel/internal/classifier"
	"github.com/EddWithSauce/KabutechMushyModel/internal/engine"
	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
	"github.com/EddWithSauce/KabutechMushyModel/internal/output"
)

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the timestamp source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session runs inference sessions: classify one image, evaluate the rules,
// assemble the record, deliver it to the sink. Sessions are synchronous;
// each Run completes before the caller starts the next.
type Session struct {
	classifier classifier.Classifier
	engine     *engine.Engine
	sink       output.Sink
	now        func() time.Time
}

// New creates a Session from the given components.
func New(cls classifier.Classifier, eng *engine.Engine, sink output.Sink, opts ...Option) *Session {
	s := &Session{
		classifier: cls,
		engine:     eng,
		sink:       sink,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one session for the image at imagePath with the given
// environment readings. A missing image aborts before classification and
// nothing is written to the sink. The returned record is the one persisted.
func (s *Session) Run(ctx context.Context, imagePath string, env model.EnvironmentSnapshot) (model.SessionRecord, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return model.SessionRecord{}, fmt.Errorf("session: image %s: %w", imagePath, err)
	}

	pred, err := s.classifier.Classify(imagePath)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("session: classify: %w", err)
	}
	slog.Debug("classified image",
		"image", imagePath,
		"class", pred.Label,
		"confidence", pred.Confidence)

	result := s.engine.Evaluate(pred.Category, pred.Confidence, env)

	rec := model.NewSessionRecord(s.now(), imagePath, pred.Label, pred.Confidence, env, result)
	if err := s.sink.Write(ctx, rec); err != nil {
		return rec, fmt.Errorf("session: write record: %w", err)
	}
	return rec, nil
}

// Close releases the classifier and the sink.
func (s *Session) Close() error {
	cerr := s.classifier.Close()
	serr := s.sink.Close()
	if cerr != nil {
		return cerr
	}
	return serr
}
