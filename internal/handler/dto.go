package handler

import (
	"time"

	"github.com/msomdec/eventpass/internal/domain"
)

// CategoryDTO is the JSON representation of a category.
type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

func toCategoryDTO(c domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

func toCategoryDTOs(cs []domain.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(cs))
	for i, c := range cs {
		out[i] = toCategoryDTO(c)
	}
	return out
}
