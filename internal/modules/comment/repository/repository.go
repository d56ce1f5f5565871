package repository

import (
	"context"

	"provenance.com/innovationhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	// FindBySuggestion returns the thread oldest first, dropping internal comments unless includeInternal.
	FindBySuggestion(ctx context.Context, suggestionID uuid.UUID, includeInternal bool) ([]*entity.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindBySuggestion(ctx context.Context, suggestionID uuid.UUID, includeInternal bool) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	query := r.db.WithContext(ctx).
		Preload("Author").
		Where("suggestion_id = ?", suggestionID)

	if !includeInternal {
		query = query.Where("is_internal = ?", false)
	}

	if err := query.Order("created_at ASC").Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entity.Comment{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *commentRepository) DeleteBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Delete(&entity.Comment{})
	return result.RowsAffected, result.Error
}
