package dto

import (
	"time"

	"provenance.com/innovationhub/internal/entity"
	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=200"`
	Color       string `json:"color" binding:"omitempty,hexcolor6"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateCategoryRequest only touches the fields present in the body.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	Color       *string `json:"color" binding:"omitempty,hexcolor6"`
	IsActive    *bool   `json:"isActive"`
}

type CategoryFilter struct {
	Active bool `form:"active"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type SeedResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}
