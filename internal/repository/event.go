package repository

import (
	"context"
	"time"

	"sharescribe/internal/model"
)

// EventRepository stores and reads analytics events.
type EventRepository interface {
	Record(ctx context.Context, ev *model.Event) error

	// ListForOwnerSince returns every event on the owner's documents created at or after since,
	// ordered by creation time ascending.
	ListForOwnerSince(ctx context.Context, ownerID string, since time.Time) ([]model.Event, error)

	// TopDocuments returns the owner's documents with the highest view counts.
	TopDocuments(ctx context.Context, ownerID string, limit int) ([]model.DocumentStats, error)
}
