package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/msomdec/eventpass/internal/repository/migrate"
)

// FS holds the PostgreSQL schema migrations, applied in filename order.
//
//go:embed *.sql
var FS embed.FS

// Run applies the pending PostgreSQL migrations.
func Run(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db, FS, migrate.Postgres)
}
