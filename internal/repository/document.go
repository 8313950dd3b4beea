package repository

import (
	"context"

	"sharescribe/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindBySlug returns a document by its public slug.
	FindBySlug(ctx context.Context, slug string) (*model.Document, error)

	// SlugExists reports whether any document already uses slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListByOwner returns one page of the owner's documents, newest first, and the owner's total.
	ListByOwner(ctx context.Context, ownerID string, pq PageQuery) (*PageResult[model.Document], error)

	// CountByOwner returns how many documents the owner has.
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// Update persists the mutable fields of doc (title, description, tags, visibility,
	// password hash, expiry, folder) and returns the stored row. Slug and counters are untouched.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// IncrementViewCount bumps view_count through the increment_view_count procedure.
	IncrementViewCount(ctx context.Context, id string) error

	// IncrementDownloadCount bumps download_count through the increment_download_count procedure.
	IncrementDownloadCount(ctx context.Context, id string) error
}
