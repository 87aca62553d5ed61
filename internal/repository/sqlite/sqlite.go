package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection and implements domain.Store.
type DB struct {
	SqlDB *sql.DB
}

var _ domain.Store = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded SQLite migrations.
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
