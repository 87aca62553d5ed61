package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/eventpass/internal/domain"
)

// NotificationLogRepository implements domain.NotificationLogRepository using SQLite.
type NotificationLogRepository struct {
	db *sql.DB
}

// NewNotificationLogRepository creates a new SQLite-backed NotificationLogRepository.
func NewNotificationLogRepository(db *DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db.SqlDB}
}

func (r *NotificationLogRepository) Append(ctx context.Context, rec *domain.NotificationRecord) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_log (registration_id, kind, recipient, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RegistrationID, rec.Kind, rec.Recipient, rec.Status, rec.Error, now,
	)
	if err != nil {
		return fmt.Errorf("insert notification record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	rec.ID = id
	rec.CreatedAt = now
	return nil
}

func (r *NotificationLogRepository) ListByRegistration(ctx context.Context, registrationID string) ([]domain.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, registration_id, kind, recipient, status, error, created_at
		 FROM notification_log WHERE registration_id = ? ORDER BY id`, registrationID)
	if err != nil {
		return nil, fmt.Errorf("list notification records: %w", err)
	}
	defer rows.Close()

	var recs []domain.NotificationRecord
	for rows.Next() {
		rec, err := scanNotificationRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *NotificationLogRepository) Latest(ctx context.Context) (map[string]domain.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, registration_id, kind, recipient, status, error, created_at
		 FROM notification_log
		 WHERE id IN (SELECT MAX(id) FROM notification_log GROUP BY registration_id)`)
	if err != nil {
		return nil, fmt.Errorf("latest notification records: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]domain.NotificationRecord)
	for rows.Next() {
		rec, err := scanNotificationRecord(rows)
		if err != nil {
			return nil, err
		}
		latest[rec.RegistrationID] = rec
	}
	return latest, rows.Err()
}

func scanNotificationRecord(rows *sql.Rows) (domain.NotificationRecord, error) {
	var rec domain.NotificationRecord
	if err := rows.Scan(&rec.ID, &rec.RegistrationID, &rec.Kind, &rec.Recipient, &rec.Status, &rec.Error, &rec.CreatedAt); err != nil {
		return rec, fmt.Errorf("scan notification record: %w", err)
	}
	return rec, nil
}
