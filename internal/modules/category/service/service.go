package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"provenance.com/innovationhub/internal/entity"
	"provenance.com/innovationhub/internal/modules/category/dto"
	"provenance.com/innovationhub/internal/modules/category/repository"
	"provenance.com/innovationhub/pkg/apperror"
	"provenance.com/innovationhub/pkg/database"
)

// DefaultCategories are inserted by SeedDefaults when missing.
var DefaultCategories = []entity.Category{
	{Name: "General", Description: "General suggestions and feedback", Color: "#6B7280"},
	{Name: "Feature Request", Description: "Ideas for new features", Color: "#3B82F6"},
	{Name: "Bug Report", Description: "Problems that need fixing", Color: "#EF4444"},
	{Name: "Improvement", Description: "Improvements to existing features", Color: "#10B981"},
	{Name: "UI/UX", Description: "Interface and experience feedback", Color: "#8B5CF6"},
	{Name: "Performance", Description: "Speed and performance issues", Color: "#F59E0B"},
}

type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	GetAllCategories(ctx context.Context, filter dto.CategoryFilter) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	SeedDefaults(ctx context.Context) (*dto.SeedResult, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperror.ErrInvalidInput)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !database.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("category with name %s already exists: %w", name, apperror.ErrConflict)
	}

	category := &entity.Category{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Color:       req.Color,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("category with name %s already exists: %w", name, apperror.ErrConflict)
		}
		return nil, err
	}

	res := dto.NewCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) GetAllCategories(ctx context.Context, filter dto.CategoryFilter) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx, filter.Active)
	if err != nil {
		return nil, err
	}

	categoryResponses := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		categoryResponses = append(categoryResponses, dto.NewCategoryResponse(cat))
	}
	return categoryResponses, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", apperror.ErrInvalidInput)
		}
		if name != category.Name {
			other, err := s.repo.FindByName(ctx, name)
			if err != nil && !database.IsNotFound(err) {
				return nil, err
			}
			if other != nil && other.ID != category.ID {
				return nil, fmt.Errorf("category with name %s already exists: %w", name, apperror.ErrConflict)
			}
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	affected, err := s.repo.Update(ctx, category)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("category with name %s already exists: %w", category.Name, apperror.ErrConflict)
		}
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("category was deleted during update: %w", apperror.ErrGone)
	}

	res := dto.NewCategoryResponse(category)
	return &res, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category was deleted concurrently: %w", apperror.ErrGone)
	}
	return nil
}

func (s *categoryService) SeedDefaults(ctx context.Context) (*dto.SeedResult, error) {
	result := &dto.SeedResult{Created: []string{}, Skipped: []string{}}

	for _, def := range DefaultCategories {
		existing, err := s.repo.FindByName(ctx, def.Name)
		if err != nil && !database.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			result.Skipped = append(result.Skipped, def.Name)
			continue
		}

		category := def
		category.IsActive = true
		if err := s.repo.Create(ctx, &category); err != nil {
			if database.IsUniqueViolation(err) {
				result.Skipped = append(result.Skipped, def.Name)
				continue
			}
			return nil, err
		}
		result.Created = append(result.Created, def.Name)
	}

	return result, nil
}

func (s *categoryService) find(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("category not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return category, nil
}
