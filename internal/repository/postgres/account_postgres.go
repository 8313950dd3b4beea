package postgres

import (
	"context"
	"database/sql"
	"time"

	"sharescribe/internal/model"
	"sharescribe/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
type AccountPostgres struct {
	db *sql.DB
}

func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

func (r *AccountPostgres) Ensure(ctx context.Context, id, email string) error {
	const q = `
		INSERT INTO profiles (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, q, id, email)
	return err
}

func (r *AccountPostgres) FindByID(ctx context.Context, id string) (*model.Account, error) {
	const q = `
		SELECT id, email, is_pro, storage_used, payment_id, order_id, created_at, updated_at
		FROM profiles WHERE id = $1`
	var (
		a         model.Account
		paymentID sql.NullString
		orderID   sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID,
		&a.Email,
		&a.IsPro,
		&a.StorageUsed,
		&paymentID,
		&orderID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.PaymentID = paymentID.String
	a.OrderID = orderID.String
	return &a, nil
}

func (r *AccountPostgres) SetOrder(ctx context.Context, id, orderID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET order_id = $2, updated_at = $3 WHERE id = $1`, id, orderID, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkPro flips the account to the pro plan. Repeating it with the same payment is harmless.
func (r *AccountPostgres) MarkPro(ctx context.Context, id, email, paymentID, orderID string, at time.Time) error {
	const q = `
		INSERT INTO profiles (id, email, is_pro, payment_id, order_id, created_at, updated_at)
		VALUES ($1, $2, TRUE, $3, $4, $5, $5)
		ON CONFLICT (id) DO UPDATE
		   SET is_pro = TRUE,
		       payment_id = EXCLUDED.payment_id,
		       order_id = EXCLUDED.order_id,
		       updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, id, email, paymentID, orderID, at)
	return err
}

func (r *AccountPostgres) AddStorageUsed(ctx context.Context, id string, delta int64) error {
	_, err := r.db.ExecContext(ctx, `SELECT increment_storage_used($1, $2)`, id, delta)
	return err
}
