package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/eventpass/internal/domain"
)

// fileStore implements domain.FileStore using BYTEA rows.
type fileStore struct {
	db *sql.DB
}

func (s *fileStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file_blobs (storage_key, data) VALUES ($1, $2)
		 ON CONFLICT (storage_key) DO UPDATE SET data = EXCLUDED.data, created_at = now()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("save file blob: %w", err)
	}
	return nil
}

func (s *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM file_blobs WHERE storage_key = $1`, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get file blob: %w", err)
	}
	return data, nil
}

func (s *fileStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM file_blobs WHERE storage_key = $1)`, key,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check file blob: %w", err)
	}
	return exists, nil
}

func (s *fileStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT storage_key FROM file_blobs WHERE starts_with(storage_key, $1) ORDER BY storage_key`, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list file blobs: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan file blob key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM file_blobs WHERE storage_key = $1`, key); err != nil {
		return fmt.Errorf("delete file blob: %w", err)
	}
	return nil
}
