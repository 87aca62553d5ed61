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

// CategoryRepository implements domain.CategoryRepository using SQLite.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new SQLite-backed CategoryRepository.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db.SqlDB}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		id, category.Name, category.Description, now,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	category.ID = id
	category.CreatedAt = now
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c := &domain.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ? WHERE id = ?`,
		category.Name, category.Description, category.ID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireOneRow(result)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireOneRow(result)
}

// requireOneRow maps a write that matched nothing to domain.ErrNotFound.
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
