package postgres

import (
	"context"
	"database/sql"
	"time"

	"sharescribe/internal/model"
	"sharescribe/internal/repository"
)

// EventPostgres is a PostgreSQL implementation of repository.EventRepository.
type EventPostgres struct {
	db *sql.DB
}

func NewEventPostgres(db *sql.DB) *EventPostgres {
	return &EventPostgres{db: db}
}

var _ repository.EventRepository = (*EventPostgres)(nil)

// Record inserts ev. ID and CreatedAt are filled by the database when empty.
func (r *EventPostgres) Record(ctx context.Context, ev *model.Event) error {
	const q = `
		INSERT INTO analytics_events (document_id, event_type, client_id, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		RETURNING id, created_at`
	var at sql.NullTime
	if !ev.CreatedAt.IsZero() {
		at = sql.NullTime{Time: ev.CreatedAt, Valid: true}
	}
	return r.db.QueryRowContext(ctx, q, ev.DocumentID, string(ev.Kind), nullString(ev.ClientID), at).
		Scan(&ev.ID, &ev.CreatedAt)
}

func (r *EventPostgres) ListForOwnerSince(ctx context.Context, ownerID string, since time.Time) ([]model.Event, error) {
	const q = `
		SELECT e.id, e.document_id, e.event_type, e.client_id, e.created_at
		FROM analytics_events e
		JOIN documents d ON d.id = e.document_id
		WHERE d.owner_id = $1 AND e.created_at >= $2
		ORDER BY e.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, ownerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var (
			ev       model.Event
			kind     string
			clientID sql.NullString
		)
		if err := rows.Scan(&ev.ID, &ev.DocumentID, &kind, &clientID, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Kind = model.EventKind(kind)
		ev.ClientID = clientID.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *EventPostgres) TopDocuments(ctx context.Context, ownerID string, limit int) ([]model.DocumentStats, error) {
	const q = `
		SELECT id, title, slug, view_count, download_count
		FROM documents
		WHERE owner_id = $1
		ORDER BY view_count DESC, created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]model.DocumentStats, 0, limit)
	for rows.Next() {
		var s model.DocumentStats
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.ViewCount, &s.DownloadCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
