package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/repository/postgres/migrations"
)

// DB wraps a PostgreSQL connection pool and implements domain.Store.
type DB struct {
	SqlDB *sql.DB
}

var _ domain.Store = (*DB)(nil)

// Open connects to PostgreSQL using a lib/pq DSN or URL.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return Wrap(db), nil
}

// Wrap adapts an already opened *sql.DB.
func Wrap(db *sql.DB) *DB {
	return &DB{SqlDB: db}
}

func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() domain.UserRepository {
	return NewUserRepository(d)
}

func (d *DB) Registrations() domain.RegistrationRepository {
	return NewRegistrationRepository(d)
}

func (d *DB) Categories() domain.CategoryRepository {
	return NewCategoryRepository(d)
}

func (d *DB) NotificationLog() domain.NotificationLogRepository {
	return NewNotificationLogRepository(d)
}

func (d *DB) FileStore() domain.FileStore {
	return &fileStore{db: d.SqlDB}
}

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
