package simulation

import (
	"context"

	"github.com/scorecastlab/scorecast/internal/domain/engine"
)

// Repository stores simulation records. ListRecent returns newest first;
// kind narrows to one engine when non-empty.
type Repository interface {
	Insert(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, bool, error)
	ListRecent(ctx context.Context, kind engine.Kind, limit int) ([]Record, error)
}
