package output

import (
	"context"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

// Sink defines the interface for session record destinations.
type Sink interface {
	Write(ctx context.Context, rec model.SessionRecord) error
	Close() error
}
