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
)

func TestAccountPostgres_Ensure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountPostgres(db)

	mock.ExpectExec("INSERT INTO profiles (.+) ON CONFLICT \\(id\\) DO NOTHING").
		WithArgs("user-1", "a@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Ensure(context.Background(), "user-1", "a@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountPostgres(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "is_pro", "storage_used", "payment_id", "order_id", "created_at", "updated_at"}).
			AddRow("user-1", "a@example.com", true, int64(4096), "pay_1", nil, now, now)
		mock.ExpectQuery("SELECT (.+) FROM profiles WHERE id = ?").
			WithArgs("user-1").
			WillReturnRows(rows)

		acc, err := repo.FindByID(ctx, "user-1")

		require.NoError(t, err)
		assert.True(t, acc.IsPro)
		assert.Equal(t, int64(4096), acc.StorageUsed)
		assert.Equal(t, "pay_1", acc.PaymentID)
		assert.Empty(t, acc.OrderID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles WHERE id = ?").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		acc, err := repo.FindByID(ctx, "ghost")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, acc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_SetOrder(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("updates the order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE profiles SET order_id").
			WithArgs("user-1", "order_1", at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewAccountPostgres(db).SetOrder(context.Background(), "user-1", "order_1", at))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown account", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE profiles SET order_id").
			WithArgs("ghost", "order_1", at).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewAccountPostgres(db).SetOrder(context.Background(), "ghost", "order_1", at)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestAccountPostgres_MarkPro(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountPostgres(db)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec("INSERT INTO profiles (.+) ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("user-1", "a@example.com", "pay_1", "order_1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkPro(context.Background(), "user-1", "a@example.com", "pay_1", "order_1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_AddStorageUsed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountPostgres(db)

	mock.ExpectExec("SELECT increment_storage_used").
		WithArgs("user-1", int64(-2048)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.AddStorageUsed(context.Background(), "user-1", -2048))
	assert.NoError(t, mock.ExpectationsWereMet())
}
