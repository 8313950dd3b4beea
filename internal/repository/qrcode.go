package repository

import (
	"context"

	"sharescribe/internal/model"
)

// QRCodeRepository persists saved QR codes.
type QRCodeRepository interface {
	Create(ctx context.Context, qr *model.QRCode) (*model.QRCode, error)
	FindByID(ctx context.Context, id string) (*model.QRCode, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.QRCode, error)
	Delete(ctx context.Context, id string) error
	IncrementScanCount(ctx context.Context, id string) error
}
