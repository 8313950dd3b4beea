package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharescribe/internal/model"
	"sharescribe/internal/qr"
	"sharescribe/internal/repository"
)

// CreateQRInput describes a new saved QR code.
type CreateQRInput struct {
	OwnerID    string
	Kind       model.QRKind
	Payload    string
	DocumentID string
	Style      model.QRStyle
}

// QRCodeService manages saved QR codes and their scans.
type QRCodeService interface {
	Create(ctx context.Context, in CreateQRInput) (*model.QRCode, error)
	List(ctx context.Context, ownerID string) ([]model.QRCode, error)
	Delete(ctx context.Context, id, ownerID string) error

	// Image renders a QR code the caller owns.
	Image(ctx context.Context, id, ownerID string) ([]byte, error)

	// Scan counts a scan and returns the code so the caller can redirect or show its text.
	Scan(ctx context.Context, id, clientIP string) (*model.QRCode, error)
}

type qrCodeService struct {
	codes     repository.QRCodeRepository
	docs      repository.DocumentRepository
	events    repository.EventRepository
	publicURL string
	log       *zap.Logger
	now       func() time.Time
}

func NewQRCodeService(codes repository.QRCodeRepository, docs repository.DocumentRepository, events repository.EventRepository, publicURL string, log *zap.Logger) QRCodeService {
	return &qrCodeService{
		codes:     codes,
		docs:      docs,
		events:    events,
		publicURL: publicURL,
		log:       log.Named("qrcodes"),
		now:       time.Now,
	}
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *qrCodeService) Create(ctx context.Context, in CreateQRInput) (*model.QRCode, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: type must be one of pdf_url, custom_url, text, vcard", ErrValidation)
	}

	if in.DocumentID != "" {
		doc, err := s.ownedDocument(ctx, in.DocumentID, in.OwnerID)
		if err != nil {
			return nil, err
		}
		if in.Kind == model.QRKindPDFURL && strings.TrimSpace(in.Payload) == "" {
			in.Payload = ShareURL(s.publicURL, doc.Slug)
		}
	}

	in.Payload = strings.TrimSpace(in.Payload)
	if in.Payload == "" {
		return nil, fmt.Errorf("%w: data is required", ErrValidation)
	}
	if len(in.Payload) > qr.MaxPayload {
		return nil, fmt.Errorf("%w: data must not exceed %d bytes", ErrValidation, qr.MaxPayload)
	}
	if in.Kind.IsURL() && !isHTTPURL(in.Payload) {
		return nil, fmt.Errorf("%w: data must be an http(s) URL", ErrValidation)
	}

	opts := qr.Options{Foreground: in.Style.Foreground, Background: in.Style.Background, Size: in.Style.Size}.Normalize()
	if _, err := qr.ParseHexColor(opts.Foreground); err != nil {
		return nil, fmt.Errorf("%w: fg_color: %v", ErrValidation, err)
	}
	if _, err := qr.ParseHexColor(opts.Background); err != nil {
		return nil, fmt.Errorf("%w: bg_color: %v", ErrValidation, err)
	}

	code := &model.QRCode{
		ID:         uuid.New().String(),
		OwnerID:    in.OwnerID,
		DocumentID: in.DocumentID,
		Kind:       in.Kind,
		Payload:    in.Payload,
		Style: model.QRStyle{
			Foreground: opts.Foreground,
			Background: opts.Background,
			Size:       opts.Size,
			Name:       in.Style.Name,
		},
		CreatedAt: s.now().UTC(),
	}
	return s.codes.Create(ctx, code)
}

func (s *qrCodeService) ownedDocument(ctx context.Context, id, ownerID string) (*model.Document, error) {
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
	if !doc.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return doc, nil
}

func (s *qrCodeService) List(ctx context.Context, ownerID string) ([]model.QRCode, error) {
	return s.codes.ListByOwner(ctx, ownerID)
}

func (s *qrCodeService) find(ctx context.Context, id string) (*model.QRCode, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	code, err := s.codes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return code, nil
}

func (s *qrCodeService) findOwned(ctx context.Context, id, ownerID string) (*model.QRCode, error) {
	code, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID == "" || code.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return code, nil
}

func (s *qrCodeService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.findOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.codes.Delete(ctx, id)
}

func (s *qrCodeService) Image(ctx context.Context, id, ownerID string) ([]byte, error) {
	code, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return qr.PNG(code.Payload, qr.Options{
		Foreground: code.Style.Foreground,
		Background: code.Style.Background,
		Size:       code.Style.Size,
	})
}

func (s *qrCodeService) Scan(ctx context.Context, id, clientIP string) (*model.QRCode, error) {
	code, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.codes.IncrementScanCount(ctx, code.ID); err != nil {
		s.log.Warn("scan_count_failed", zap.String("qr_id", code.ID), zap.Error(err))
	}
	if code.DocumentID != "" {
		ev := &model.Event{DocumentID: code.DocumentID, Kind: model.EventQRScan, ClientID: ClientID(clientIP)}
		if err := s.events.Record(ctx, ev); err != nil {
			s.log.Warn("event_record_failed", zap.String("document_id", code.DocumentID), zap.String("event_type", string(model.EventQRScan)), zap.Error(err))
		}
	}
	return code, nil
}
