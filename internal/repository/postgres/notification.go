package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/eventpass/internal/domain"
)

// NotificationLogRepository implements domain.NotificationLogRepository using PostgreSQL.
type NotificationLogRepository struct {
	db *sql.DB
}

func NewNotificationLogRepository(db *DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db.SqlDB}
}

func (r *NotificationLogRepository) Append(ctx context.Context, rec *domain.NotificationRecord) error {
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO notification_log (registration_id, kind, recipient, status, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		rec.RegistrationID, string(rec.Kind), rec.Recipient, string(rec.Status), rec.Error, now,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert notification record: %w", err)
	}
	rec.CreatedAt = now
	return nil
}

func (r *NotificationLogRepository) ListByRegistration(ctx context.Context, registrationID string) ([]domain.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, registration_id, kind, recipient, status, error, created_at
		 FROM notification_log WHERE registration_id = $1 ORDER BY id`, registrationID)
	if err != nil {
		return nil, fmt.Errorf("list notification records: %w", err)
	}
	defer rows.Close()

	var recs []domain.NotificationRecord
	for rows.Next() {
		var rec domain.NotificationRecord
		if err := rows.Scan(&rec.ID, &rec.RegistrationID, &rec.Kind, &rec.Recipient, &rec.Status, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *NotificationLogRepository) Latest(ctx context.Context) (map[string]domain.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT ON (registration_id) id, registration_id, kind, recipient, status, error, created_at
		 FROM notification_log ORDER BY registration_id, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("latest notification records: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]domain.NotificationRecord)
	for rows.Next() {
		var rec domain.NotificationRecord
		if err := rows.Scan(&rec.ID, &rec.RegistrationID, &rec.Kind, &rec.Recipient, &rec.Status, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification record: %w", err)
		}
		latest[rec.RegistrationID] = rec
	}
	return latest, rows.Err()
}
