package audit

import (
	"context"
	"errors"
)

// ErrNotFound keeps storage-specific 404s consistent across implementations.
var ErrNotFound = errors.New("record not found")

type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEntity(ctx context.Context, entity string, entityID uint64) ([]Event, error)
}
