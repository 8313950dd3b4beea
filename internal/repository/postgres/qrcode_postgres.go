package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sharescribe/internal/model"
	"sharescribe/internal/repository"
)

const qrColumns = `id, owner_id, document_id, type, payload, config, scan_count, created_at`

// QRCodePostgres is a PostgreSQL implementation of repository.QRCodeRepository.
type QRCodePostgres struct {
	db *sql.DB
}

func NewQRCodePostgres(db *sql.DB) *QRCodePostgres {
	return &QRCodePostgres{db: db}
}

var _ repository.QRCodeRepository = (*QRCodePostgres)(nil)

func scanQRCode(s rowScanner) (*model.QRCode, error) {
	var (
		qr     model.QRCode
		docID  sql.NullString
		kind   string
		config []byte
	)
	if err := s.Scan(&qr.ID, &qr.OwnerID, &docID, &kind, &qr.Payload, &config, &qr.ScanCount, &qr.CreatedAt); err != nil {
		return nil, err
	}
	qr.DocumentID = docID.String
	qr.Kind = model.QRKind(kind)
	if len(config) > 0 {
		if err := json.Unmarshal(config, &qr.Style); err != nil {
			return nil, fmt.Errorf("decode qr config: %w", err)
		}
	}
	return &qr, nil
}

func (r *QRCodePostgres) Create(ctx context.Context, qr *model.QRCode) (*model.QRCode, error) {
	config, err := jsonText(qr.Style)
	if err != nil {
		return nil, fmt.Errorf("encode qr config: %w", err)
	}
	q := `
		INSERT INTO qr_codes (id, owner_id, document_id, type, payload, config, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + qrColumns
	row := r.db.QueryRowContext(ctx, q,
		qr.ID,
		qr.OwnerID,
		nullString(qr.DocumentID),
		string(qr.Kind),
		qr.Payload,
		config,
		qr.CreatedAt,
	)
	return scanQRCode(row)
}

func (r *QRCodePostgres) FindByID(ctx context.Context, id string) (*model.QRCode, error) {
	q := `SELECT ` + qrColumns + ` FROM qr_codes WHERE id = $1`
	return scanQRCode(r.db.QueryRowContext(ctx, q, id))
}

func (r *QRCodePostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.QRCode, error) {
	q := `SELECT ` + qrColumns + ` FROM qr_codes WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.QRCode, 0)
	for rows.Next() {
		qr, err := scanQRCode(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *qr)
	}
	return items, rows.Err()
}

func (r *QRCodePostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM qr_codes WHERE id = $1`, id)
	return err
}

func (r *QRCodePostgres) IncrementScanCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `SELECT increment_scan_count($1)`, id)
	return err
}
