package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/msomdec/eventpass/internal/domain"
)

const categoryListKey = "categories"

// CategoryService manages registration categories. The full list is cached
// and invalidated on every write.
type CategoryService struct {
	categories domain.CategoryRepository
	cache      *cache.Cache
}

// NewCategoryService creates a CategoryService whose list cache lives for ttl.
func NewCategoryService(categories domain.CategoryRepository, ttl time.Duration) *CategoryService {
	return &CategoryService{
		categories: categories,
		cache:      cache.New(ttl, 2*ttl),
	}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.cache.Get(categoryListKey); ok {
		return cached.([]domain.Category), nil
	}

	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.cache.SetDefault(categoryListKey, list)
	return list, nil
}

// Name resolves a category ID to its display name, falling back to the ID
// itself when the category is unknown or the lookup fails.
func (s *CategoryService) Name(ctx context.Context, id string) string {
	list, err := s.List(ctx)
	if err != nil {
		slog.WarnContext(ctx, "resolve category name", "category_id", id, "error", err)
		return id
	}
	for _, c := range list {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// Add validates and stores a new category. Field errors are returned
// separately from store errors; a non-nil FieldErrors means nothing was written.
func (s *CategoryService) Add(ctx context.Context, name, description string) (*domain.Category, domain.FieldErrors, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if fe := ValidateCategory(name, description); fe != nil {
		return nil, fe, nil
	}

	c := &domain.Category{Name: name, Description: description}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, nil, fmt.Errorf("create category: %w", err)
	}
	s.cache.Delete(categoryListKey)
	return c, nil, nil
}

// Update validates and replaces the name and description of category id.
func (s *CategoryService) Update(ctx context.Context, id, name, description string) (domain.FieldErrors, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if fe := ValidateCategory(name, description); fe != nil {
		return fe, nil
	}

	c := &domain.Category{ID: id, Name: name, Description: description}
	if err := s.categories.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	s.cache.Delete(categoryListKey)
	return nil, nil
}

// Delete removes category id. Registrations keep their category ID.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete category: %w", err)
	}
	s.cache.Delete(categoryListKey)
	return nil
}
