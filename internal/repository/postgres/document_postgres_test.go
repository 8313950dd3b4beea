package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharescribe/internal/model"
	"sharescribe/internal/repository"
)

var documentRowColumns = []string{
	"id", "owner_id", "title", "description", "tags", "slug", "storage_path", "visibility",
	"password_hash", "expires_at", "folder", "view_count", "download_count", "size_bytes", "created_at", "updated_at",
}

func documentRow(rows *sqlmock.Rows, id string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "user-1", "Annual Report", nil, `["finance","2024"]`, "annual-report-abc12345-1", "user-1/1-report.pdf",
		"public", nil, nil, nil, int64(3), int64(1), int64(2048), now, now)
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	expires := now.Add(24 * time.Hour)
	doc := &model.Document{
		ID:           "doc-1",
		OwnerID:      "user-1",
		Title:        "Annual Report",
		Tags:         nil,
		Slug:         "annual-report-abc12345-1",
		StoragePath:  "user-1/1-report.pdf",
		Visibility:   model.VisibilityPrivate,
		PasswordHash: "$2a$10$hash",
		ExpiresAt:    &expires,
		SizeBytes:    2048,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow(doc.ID, doc.OwnerID, doc.Title, nil, `[]`, doc.Slug, doc.StoragePath, "private",
			doc.PasswordHash, expires, nil, int64(0), int64(0), doc.SizeBytes, now, now)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.OwnerID, doc.Title, nil, "[]", doc.Slug, doc.StoragePath, "private",
			doc.PasswordHash, expires, nil, doc.SizeBytes, now, now).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	require.NoError(t, err)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, model.VisibilityPrivate, result.Visibility)
	assert.True(t, result.HasPassword)
	assert.Equal(t, []string{}, result.Tags)
	require.NotNil(t, result.ExpiresAt)
	assert.True(t, expires.Equal(*result.ExpiresAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := documentRow(sqlmock.NewRows(documentRowColumns), "doc-1", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-1")

		require.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
		assert.Equal(t, []string{"finance", "2024"}, doc.Tags)
		assert.False(t, doc.HasPassword)
		assert.Nil(t, doc.ExpiresAt)
		assert.Equal(t, int64(3), doc.ViewCount)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindBySlugAndExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE slug = ?").
		WithArgs("annual-report-abc12345-1").
		WillReturnRows(documentRow(sqlmock.NewRows(documentRowColumns), "doc-1", time.Now()))

	doc, err := repo.FindBySlug(ctx, "annual-report-abc12345-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("taken").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.SlugExists(ctx, "taken")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE owner_id").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery("SELECT (.+) FROM documents\\s+WHERE owner_id = \\$1\\s+ORDER BY").
			WithArgs("user-1", 10, 0).
			WillReturnRows(documentRow(sqlmock.NewRows(documentRowColumns), "doc-1", time.Now()))

		res, err := repo.ListByOwner(ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("count fails", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE owner_id").
			WithArgs("user-1").
			WillReturnError(errors.New("db down"))

		res, err := repo.ListByOwner(ctx, "user-1", repository.PageQuery{Limit: 10})

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	now := time.Now().UTC()
	doc := &model.Document{
		ID:         "doc-1",
		Title:      "Renamed",
		Tags:       []string{"a"},
		Visibility: model.VisibilityPublic,
		Folder:     "work",
		UpdatedAt:  now,
	}

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow("doc-1", "user-1", "Renamed", nil, `["a"]`, "slug", "path", "public",
			nil, nil, "work", int64(0), int64(0), int64(1), now, now)

	mock.ExpectQuery("UPDATE documents").
		WithArgs("doc-1", "Renamed", nil, `["a"]`, "public", nil, nil, "work", now).
		WillReturnRows(rows)

	updated, err := repo.Update(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "work", updated.Folder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "doc-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Counters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("SELECT increment_view_count").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT increment_download_count").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.IncrementViewCount(ctx, "doc-1"))
	assert.NoError(t, repo.IncrementDownloadCount(ctx, "doc-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
