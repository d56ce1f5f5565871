package repository

import (
	"context"

	"provenance.com/innovationhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpvoteRepository interface {
	// Create relies on the (suggestion_id, user_id) unique index; callers must handle unique violations.
	Create(ctx context.Context, upvote *entity.Upvote) error
	Delete(ctx context.Context, suggestionID, userID uuid.UUID) (int64, error)
	Exists(ctx context.Context, suggestionID, userID uuid.UUID) (bool, error)
	CountBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error)
	CountBySuggestionIDs(ctx context.Context, suggestionIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error)
}

type upvoteRepository struct {
	db *gorm.DB
}

func NewUpvoteRepository(db *gorm.DB) UpvoteRepository {
	return &upvoteRepository{db: db}
}

func (r *upvoteRepository) Create(ctx context.Context, upvote *entity.Upvote) error {
	return r.db.WithContext(ctx).Create(upvote).Error
}

func (r *upvoteRepository) Delete(ctx context.Context, suggestionID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		Delete(&entity.Upvote{})
	return result.RowsAffected, result.Error
}

func (r *upvoteRepository) Exists(ctx context.Context, suggestionID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Upvote{}).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *upvoteRepository) CountBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Upvote{}).
		Where("suggestion_id = ?", suggestionID).
		Count(&count).Error
	return count, err
}

type suggestionCount struct {
	SuggestionID uuid.UUID
	Count        int64
}

// CountBySuggestionIDs aggregates in a single grouped query; ids without upvotes map to 0.
func (r *upvoteRepository) CountBySuggestionIDs(ctx context.Context, suggestionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(suggestionIDs))
	if len(suggestionIDs) == 0 {
		return counts, nil
	}

	var rows []suggestionCount
	if err := r.db.WithContext(ctx).
		Model(&entity.Upvote{}).
		Select("suggestion_id, COUNT(*) AS count").
		Where("suggestion_id IN ?", suggestionIDs).
		Group("suggestion_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, id := range suggestionIDs {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.SuggestionID] = row.Count
	}
	return counts, nil
}

func (r *upvoteRepository) DeleteBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Delete(&entity.Upvote{})
	return result.RowsAffected, result.Error
}
