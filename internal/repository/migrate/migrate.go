// Package migrate applies numbered .sql schema files to a database and
// records each applied file in a schema_migrations table.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

// Dialect carries the backend-specific statements of the runner.
type Dialect struct {
	// Name identifies the backend in log lines.
	Name string
	// CreateTable creates schema_migrations if it does not exist.
	CreateTable string
	// Record inserts one applied filename.
	Record string
}

var (
	SQLite = Dialect{
		Name: "sqlite",
		CreateTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		Record: "INSERT INTO schema_migrations (filename) VALUES (?)",
	}
	Postgres = Dialect{
		Name: "postgres",
		CreateTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		Record: "INSERT INTO schema_migrations (filename) VALUES ($1)",
	}
)

// Run applies every .sql file in fsys not yet recorded, in filename order,
// each in its own transaction.
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, d Dialect) error {
	if _, err := db.ExecContext(ctx, d.CreateTable); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := appliedFiles(ctx, db)
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	files, err := sqlFiles(fsys)
	if err != nil {
		return fmt.Errorf("list migration files: %w", err)
	}

	for _, filename := range files {
		if applied[filename] {
			slog.Debug("migration already applied", "file", filename, "backend", d.Name)
			continue
		}
		if err := apply(ctx, db, fsys, d, filename); err != nil {
			return fmt.Errorf("apply migration %s: %w", filename, err)
		}
		slog.Info("migration applied", "file", filename, "backend", d.Name)
	}
	return nil
}

func appliedFiles(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}
	return applied, rows.Err()
}

func sqlFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func apply(ctx context.Context, db *sql.DB, fsys fs.FS, d Dialect, filename string) error {
	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}
	if _, err := tx.ExecContext(ctx, d.Record, filename); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}
