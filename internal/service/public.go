package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharescribe/internal/model"
	"sharescribe/internal/password"
	"sharescribe/internal/qr"
	"sharescribe/internal/repository"
	"sharescribe/internal/storage"
)

// ResolveInput identifies who is opening a public link.
// ViewerID is empty for anonymous callers.
type ResolveInput struct {
	Slug     string
	ViewerID string
	Password string
	ClientIP string
}

// PublicDocument is what an allowed viewer receives.
type PublicDocument struct {
	Document    *model.Document `json:"pdf"`
	DownloadURL string          `json:"download_url"`
	ExpiresIn   int             `json:"expires_in"`
}

// PublicService serves documents through their share links.
type PublicService interface {
	// Resolve runs the access gate and records a view on success.
	Resolve(ctx context.Context, in ResolveInput) (*PublicDocument, error)

	// Download runs the access gate, records a download and returns a presigned URL.
	Download(ctx context.Context, in ResolveInput) (string, error)

	// RecordView counts a view of a public, unexpired document by ID.
	RecordView(ctx context.Context, documentID, clientIP string) error

	// ShareQR renders the share URL of a public document as a PNG.
	ShareQR(ctx context.Context, slug string, size int) ([]byte, error)
}

type publicService struct {
	store     storage.Storage
	docs      repository.DocumentRepository
	events    repository.EventRepository
	publicURL string
	expiry    time.Duration
	log       *zap.Logger
	now       func() time.Time
}

func NewPublicService(store storage.Storage, docs repository.DocumentRepository, events repository.EventRepository, publicURL string, presignExpiry time.Duration, log *zap.Logger) PublicService {
	return &publicService{
		store:     store,
		docs:      docs,
		events:    events,
		publicURL: publicURL,
		expiry:    presignExpiry,
		log:       log.Named("public"),
		now:       time.Now,
	}
}

// ClientID is the first 20 hex characters of the SHA-256 of ip.
func ClientID(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])[:20]
}

// checkAccess applies the gate in order: visibility, expiry, password. Owners pass every check.
func checkAccess(doc *model.Document, viewerID, plain string, now time.Time) error {
	if doc.OwnedBy(viewerID) {
		return nil
	}
	if doc.Visibility == model.VisibilityPrivate {
		return ErrForbidden
	}
	if doc.Expired(now) {
		return ErrExpired
	}
	if doc.PasswordHash == "" {
		return nil
	}
	if plain == "" {
		return ErrPasswordRequired
	}
	if err := password.Compare(doc.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

func (s *publicService) findBySlug(ctx context.Context, slug string) (*model.Document, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	doc, err := s.docs.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *publicService) open(ctx context.Context, in ResolveInput) (*model.Document, error) {
	doc, err := s.findBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(doc, in.ViewerID, in.Password, s.now()); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *publicService) Resolve(ctx context.Context, in ResolveInput) (*PublicDocument, error) {
	doc, err := s.open(ctx, in)
	if err != nil {
		return nil, err
	}

	s.track(ctx, doc.ID, model.EventView, in.ClientIP)

	url, err := s.store.PresignGet(ctx, doc.StoragePath, s.expiry, "")
	if err != nil {
		return nil, err
	}
	doc.ShareURL = ShareURL(s.publicURL, doc.Slug)
	return &PublicDocument{
		Document:    doc,
		DownloadURL: url,
		ExpiresIn:   int(s.expiry.Seconds()),
	}, nil
}

func (s *publicService) Download(ctx context.Context, in ResolveInput) (string, error) {
	doc, err := s.open(ctx, in)
	if err != nil {
		return "", err
	}

	s.track(ctx, doc.ID, model.EventDownload, in.ClientIP)

	return s.store.PresignGet(ctx, doc.StoragePath, s.expiry, Slugify(doc.Title)+".pdf")
}

func (s *publicService) RecordView(ctx context.Context, documentID, clientIP string) error {
	if _, err := uuid.Parse(documentID); err != nil {
		return ErrNotFound
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if doc.Visibility == model.VisibilityPrivate {
		return ErrForbidden
	}
	if doc.Expired(s.now()) {
		return ErrExpired
	}
	if err := s.events.Record(ctx, &model.Event{DocumentID: doc.ID, Kind: model.EventView, ClientID: ClientID(clientIP)}); err != nil {
		return err
	}
	return s.docs.IncrementViewCount(ctx, doc.ID)
}

func (s *publicService) ShareQR(ctx context.Context, slug string, size int) ([]byte, error) {
	doc, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if doc.Visibility == model.VisibilityPrivate {
		return nil, ErrForbidden
	}
	if doc.Expired(s.now()) {
		return nil, ErrExpired
	}
	return qr.PNG(ShareURL(s.publicURL, doc.Slug), qr.Options{Size: size})
}

// track records an event and bumps the matching counter. Failures are logged only.
func (s *publicService) track(ctx context.Context, documentID string, kind model.EventKind, clientIP string) {
	ev := &model.Event{DocumentID: documentID, Kind: kind, ClientID: ClientID(clientIP)}
	if err := s.events.Record(ctx, ev); err != nil {
		s.log.Warn("event_record_failed", zap.String("document_id", documentID), zap.String("event_type", string(kind)), zap.Error(err))
	}

	var err error
	switch kind {
	case model.EventView:
		err = s.docs.IncrementViewCount(ctx, documentID)
	case model.EventDownload:
		err = s.docs.IncrementDownloadCount(ctx, documentID)
	}
	if err != nil {
		s.log.Warn("counter_increment_failed", zap.String("document_id", documentID), zap.String("event_type", string(kind)), zap.Error(err))
	}
}
