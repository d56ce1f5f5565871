package repository

import (
	"context"

	"provenance.com/innovationhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter struct {
	Status     string
	CategoryID *uuid.UUID
}

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *entity.Suggestion) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Suggestion, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Suggestion, error)
	FindAll(ctx context.Context, filter Filter, offset, limit int) ([]*entity.Suggestion, int64, error)
	// UpdateFields applies the given columns and reports how many rows matched.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Latest(ctx context.Context) (*entity.Suggestion, int64, error)
}

type suggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *entity.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *suggestionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Suggestion, error) {
	var suggestion entity.Suggestion
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubmittedBy").
		Where("id = ?", id).
		First(&suggestion).Error; err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Suggestion{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *suggestionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Suggestion, error) {
	var suggestions []*entity.Suggestion
	if len(ids) == 0 {
		return suggestions, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubmittedBy").
		Where("id IN ?", ids).
		Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *suggestionRepository) FindAll(ctx context.Context, filter Filter, offset, limit int) ([]*entity.Suggestion, int64, error) {
	var suggestions []*entity.Suggestion
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Suggestion{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Category").
		Preload("SubmittedBy").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&suggestions).Error; err != nil {
		return nil, 0, err
	}

	return suggestions, total, nil
}

func (r *suggestionRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Suggestion{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *suggestionRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entity.Suggestion{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
