package domain

import (
	"context"
	"time"
)

// Category is an admission tier a participant registers under.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}
