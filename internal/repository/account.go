package repository

import (
	"context"
	"time"

	"sharescribe/internal/model"
)

// AccountRepository persists profile rows keyed by the identity provider's subject.
type AccountRepository interface {
	// Ensure creates the profile row if it does not exist yet.
	Ensure(ctx context.Context, id, email string) error

	FindByID(ctx context.Context, id string) (*model.Account, error)

	// SetOrder records the gateway order the account is currently paying for.
	SetOrder(ctx context.Context, id, orderID string, at time.Time) error

	// MarkPro upserts the profile with is_pro set and the payment reference recorded.
	MarkPro(ctx context.Context, id, email, paymentID, orderID string, at time.Time) error

	// AddStorageUsed adjusts storage_used by delta through the increment_storage_used procedure.
	AddStorageUsed(ctx context.Context, id string, delta int64) error
}
