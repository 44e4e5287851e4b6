package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

// recordingSink captures written records; fails when failErr is set.
type recordingSink struct {
	records []model.SessionRecord
	failErr error
	closed  bool
}

func (r *recordingSink) Write(_ context.Context, rec model.SessionRecord) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingSink) Close() error {
	r.closed = true
	return r.failErr
}

func testRecord() model.SessionRecord {
	return model.SessionRecord{
		Timestamp:      "2026-08-23T12:00:00",
		Image:          "bag.jpg",
		PredictedClass: "healthy_mushroom",
		Severity:       model.SeverityNone,
	}
}

func TestWriteFansOutToAllSinks(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := New(a, b)

	if err := m.Write(context.Background(), testRecord()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if len(a.records) != 1 || len(b.records) != 1 {
		t.Fatalf("expected both sinks to receive the record, got %d and %d", len(a.records), len(b.records))
	}
}

func TestWriteContinuesPastFailure(t *testing.T) {
	failing := &recordingSink{failErr: errors.New("boom")}
	ok := &recordingSink{}
	m := New(failing, ok)

	err := m.Write(context.Background(), testRecord())
	if err == nil {
		t.Fatal("expected joined error from failing sink")
	}
	if len(ok.records) != 1 {
		t.Fatal("healthy sink must still receive the record")
	}
}

func TestCloseClosesAllSinks(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{failErr: errors.New("close failed")}
	m := New(a, b)

	if err := m.Close(); err == nil {
		t.Fatal("expected close error to propagate")
	}
	if !a.closed || !b.closed {
		t.Fatal("all sinks must be closed")
	}
}
