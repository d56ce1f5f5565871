package repository

import (
	"context"
	"errors"

	"provenance.com/innovationhub/internal/entity"
	"gorm.io/gorm"
)

type statusCount struct {
	Status string
	Count  int64
}

func (r *suggestionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&entity.Suggestion{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Latest returns the most recently created suggestion (nil when empty) and the total count.
func (r *suggestionRepository) Latest(ctx context.Context) (*entity.Suggestion, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Suggestion{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var latest entity.Suggestion
	err := r.db.WithContext(ctx).
		Select("id", "created_at").
		Order("created_at DESC").
		Order("id DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return &latest, total, nil
}
