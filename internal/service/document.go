package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharescribe/internal/model"
	"sharescribe/internal/password"
	"sharescribe/internal/repository"
	"sharescribe/internal/storage"
)

const pdfContentType = "application/pdf"

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// UploadInput carries one multipart upload.
type UploadInput struct {
	OwnerID     string
	OwnerEmail  string
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
	Title       string
	Description string
	Tags        []string
	Visibility  model.Visibility
	Password    string
	ExpiresAt   *time.Time
	Folder      string
}

// UpdateInput holds the fields a PATCH may change. Nil means unchanged.
// An empty Password clears the password; ClearExpiry removes the expiry.
type UpdateInput struct {
	Title       *string
	Description *string
	Tags        *[]string
	Visibility  *model.Visibility
	Password    *string
	ExpiresAt   *time.Time
	ClearExpiry bool
	Folder      *string
}

// DocumentOptions configures the document service.
type DocumentOptions struct {
	PublicURL      string
	MaxUploadBytes int64
	Plans          Plans
}

// DocumentService defines the use cases for handling the caller's documents.
type DocumentService interface {
	// Upload checks size, type and plan quota, streams the file to object storage, then saves
	// the metadata row. A failed insert triggers one best-effort delete of the stored object.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// List returns the owner's documents using limit/offset and a total count.
	List(ctx context.Context, ownerID string, limit, offset int) (*DocumentListResult, error)

	// Get returns a document by ID. Private documents are only returned to their owner.
	Get(ctx context.Context, id, viewerID string) (*model.Document, error)

	// Update changes metadata of a document the caller owns. The slug never changes.
	Update(ctx context.Context, id, ownerID string, in UpdateInput) (*model.Document, error)

	// Delete removes a document the caller owns from storage, then from the repository.
	Delete(ctx context.Context, id, ownerID string) error
}

type documentService struct {
	store    storage.Storage
	docs     repository.DocumentRepository
	accounts repository.AccountRepository
	opts     DocumentOptions
	log      *zap.Logger
	now      func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, accounts repository.AccountRepository, opts DocumentOptions, log *zap.Logger) DocumentService {
	return &documentService{
		store:    store,
		docs:     docs,
		accounts: accounts,
		opts:     opts,
		log:      log.Named("documents"),
		now:      time.Now,
	}
}

// ShareURL is the public link of slug under base.
func ShareURL(base, slug string) string {
	return strings.TrimRight(base, "/") + "/p/" + slug
}

// IsPDF accepts the PDF content type or a .pdf file name.
func IsPDF(filename, contentType string) bool {
	ct, _, _ := strings.Cut(contentType, ";")
	if strings.EqualFold(strings.TrimSpace(ct), pdfContentType) {
		return true
	}
	return strings.EqualFold(path.Ext(filename), ".pdf")
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.Body == nil {
		return nil, ErrReaderNil
	}
	if in.Size > s.opts.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if !IsPDF(in.Filename, in.ContentType) {
		return nil, ErrInvalidFileType
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Visibility == "" {
		in.Visibility = model.VisibilityPublic
	}
	if !in.Visibility.Valid() {
		return nil, fmt.Errorf("%w: visibility must be public or private", ErrValidation)
	}

	if err := s.checkQuota(ctx, in.OwnerID, in.OwnerEmail, in.Size); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	slug, err := uniqueSlug(ctx, s.docs, in.Title, now)
	if err != nil {
		return nil, err
	}

	var hash string
	if in.Password != "" {
		if hash, err = password.Hash(in.Password); err != nil {
			return nil, err
		}
	}

	key := in.OwnerID + "/" + slug + ".pdf"
	objInfo, err := s.store.Put(ctx, key, in.Body, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: pdfContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:           uuid.New().String(),
		OwnerID:      in.OwnerID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Tags:         in.Tags,
		Slug:         slug,
		StoragePath:  objInfo.Key,
		Visibility:   in.Visibility,
		PasswordHash: hash,
		ExpiresAt:    in.ExpiresAt,
		Folder:       in.Folder,
		SizeBytes:    in.Size,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Error("upload_rollback_failed", zap.String("key", key), zap.Error(delErr))
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if err := s.accounts.AddStorageUsed(ctx, in.OwnerID, in.Size); err != nil {
		s.log.Warn("storage_usage_update_failed", zap.String("owner_id", in.OwnerID), zap.Error(err))
	}

	stored.ShareURL = ShareURL(s.opts.PublicURL, stored.Slug)
	return stored, nil
}

func (s *documentService) checkQuota(ctx context.Context, ownerID, email string, size int64) error {
	if err := s.accounts.Ensure(ctx, ownerID, email); err != nil {
		return fmt.Errorf("ensure account: %w", err)
	}
	acc, err := s.accounts.FindByID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	count, err := s.docs.CountByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if !s.opts.Plans.Allows(acc, count, size) {
		return ErrQuotaExceeded
	}
	return nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, ownerID string, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.ListByOwner(ctx, ownerID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	for i := range res.Items {
		res.Items[i].ShareURL = ShareURL(s.opts.PublicURL, res.Items[i].Slug)
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id, viewerID string) (*model.Document, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Visibility == model.VisibilityPrivate && !doc.OwnedBy(viewerID) {
		return nil, ErrForbidden
	}
	doc.ShareURL = ShareURL(s.opts.PublicURL, doc.Slug)
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id, ownerID string, in UpdateInput) (*model.Document, error) {
	doc, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		doc.Title = title
	}
	if in.Description != nil {
		doc.Description = *in.Description
	}
	if in.Tags != nil {
		doc.Tags = *in.Tags
	}
	if in.Visibility != nil {
		if !in.Visibility.Valid() {
			return nil, fmt.Errorf("%w: visibility must be public or private", ErrValidation)
		}
		doc.Visibility = *in.Visibility
	}
	if in.Password != nil {
		doc.PasswordHash = ""
		if *in.Password != "" {
			if doc.PasswordHash, err = password.Hash(*in.Password); err != nil {
				return nil, err
			}
		}
	}
	switch {
	case in.ClearExpiry:
		doc.ExpiresAt = nil
	case in.ExpiresAt != nil:
		doc.ExpiresAt = in.ExpiresAt
	}
	if in.Folder != nil {
		doc.Folder = *in.Folder
	}
	doc.UpdatedAt = s.now().UTC()

	updated, err := s.docs.Update(ctx, doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	updated.ShareURL = ShareURL(s.opts.PublicURL, updated.Slug)
	return updated, nil
}

// Delete removes the object first; the row is kept if that fails so the object is not orphaned.
func (s *documentService) Delete(ctx context.Context, id, ownerID string) error {
	doc, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.accounts.AddStorageUsed(ctx, ownerID, -doc.SizeBytes); err != nil {
		s.log.Warn("storage_usage_update_failed", zap.String("owner_id", ownerID), zap.Error(err))
	}
	return nil
}

func (s *documentService) find(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) findOwned(ctx context.Context, id, ownerID string) (*model.Document, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return doc, nil
}
