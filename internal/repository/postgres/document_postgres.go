package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sharescribe/internal/model"
	"sharescribe/internal/repository"
)

const documentColumns = `id, owner_id, title, description, tags, slug, storage_path, visibility,
	password_hash, expires_at, folder, view_count, download_count, size_bytes, created_at, updated_at`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(s rowScanner) (*model.Document, error) {
	var (
		d            model.Document
		description  sql.NullString
		tags         []byte
		visibility   string
		passwordHash sql.NullString
		expiresAt    sql.NullTime
		folder       sql.NullString
	)
	if err := s.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Title,
		&description,
		&tags,
		&d.Slug,
		&d.StoragePath,
		&visibility,
		&passwordHash,
		&expiresAt,
		&folder,
		&d.ViewCount,
		&d.DownloadCount,
		&d.SizeBytes,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Description = description.String
	d.Visibility = model.Visibility(visibility)
	d.PasswordHash = passwordHash.String
	d.HasPassword = passwordHash.Valid && passwordHash.String != ""
	d.ExpiresAt = timePtr(expiresAt)
	d.Folder = folder.String
	d.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &d.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tags, err := jsonText(nonNilTags(doc.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	q := `
		INSERT INTO documents (id, owner_id, title, description, tags, slug, storage_path, visibility,
			password_hash, expires_at, folder, size_bytes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.Title,
		nullString(doc.Description),
		tags,
		doc.Slug,
		doc.StoragePath,
		string(doc.Visibility),
		nullString(doc.PasswordHash),
		nullTime(doc.ExpiresAt),
		nullString(doc.Folder),
		doc.SizeBytes,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindBySlug fetches a single document by its public slug.
func (r *DocumentPostgres) FindBySlug(ctx context.Context, slug string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE slug = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, slug))
}

func (r *DocumentPostgres) SlugExists(ctx context.Context, slug string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM documents WHERE slug = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByOwner returns the owner's documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	total, err := r.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + documentColumns + ` FROM documents
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, ownerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

func (r *DocumentPostgres) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE owner_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, q, ownerID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Update writes the mutable columns and returns the stored row.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tags, err := jsonText(nonNilTags(doc.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	q := `
		UPDATE documents
		   SET title = $2, description = $3, tags = $4, visibility = $5,
		       password_hash = $6, expires_at = $7, folder = $8, updated_at = $9
		 WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		nullString(doc.Description),
		tags,
		string(doc.Visibility),
		nullString(doc.PasswordHash),
		nullTime(doc.ExpiresAt),
		nullString(doc.Folder),
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *DocumentPostgres) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `SELECT increment_view_count($1)`, id)
	return err
}

func (r *DocumentPostgres) IncrementDownloadCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `SELECT increment_download_count($1)`, id)
	return err
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
