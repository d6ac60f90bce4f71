package repository

import (
	"context"

	"workshop-sidekick/internal/domain"
)

// ActivityStore is the durable key/value-by-time capability consumed by the
// engagement pipeline. Any ordered log store satisfies it.
//
// Query returns all records for a session in chronological order; the
// backing store is expected to serialize concurrent appends to the same
// session safely, since records are never mutated.
type ActivityStore interface {
	// Name identifies the backend in track results and health output.
	Name() string
	Put(ctx context.Context, rec domain.ActivityRecord) error
	Query(ctx context.Context, sessionID string) ([]domain.ActivityRecord, error)
}
