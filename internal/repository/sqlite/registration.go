package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/eventpass/internal/domain"
)

// RegistrationRepository implements domain.RegistrationRepository using SQLite.
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new SQLite-backed RegistrationRepository.
func NewRegistrationRepository(db *DB) *RegistrationRepository {
	return &RegistrationRepository{db: db.SqlDB}
}

const registrationColumns = `id, name, email, phone, category_id, signature, photo, created_at`

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO registrations (`+registrationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, reg.Name, reg.Email, reg.Phone, reg.CategoryID, reg.Signature, reg.Photo, now,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	reg.ID = id
	reg.CreatedAt = now
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id,
	).Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Phone, &reg.CategoryID, &reg.Signature, &reg.Photo, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query registration by id: %w", err)
	}
	return reg, nil
}

func (r *RegistrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Phone, &reg.CategoryID, &reg.Signature, &reg.Photo, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
