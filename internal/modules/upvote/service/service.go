package upvote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"provenance.com/innovationhub/internal/entity"
	notifDto "provenance.com/innovationhub/internal/modules/notification/dto"
	suggestionRepo "provenance.com/innovationhub/internal/modules/suggestion/repository"
	"provenance.com/innovationhub/internal/modules/upvote/dto"
	upvoteRepo "provenance.com/innovationhub/internal/modules/upvote/repository"
	"provenance.com/innovationhub/internal/observability/metrics"
	"provenance.com/innovationhub/pkg/apperror"
	"provenance.com/innovationhub/pkg/database"

	notifService "provenance.com/innovationhub/internal/modules/notification/service"
)

type UpvoteService interface {
	Upvote(ctx context.Context, suggestionID, userID uuid.UUID) (*dto.UpvoteResult, error)
	RemoveUpvote(ctx context.Context, suggestionID, userID uuid.UUID) (*dto.RemoveUpvoteResult, error)
	Status(ctx context.Context, suggestionID, userID uuid.UUID) (*dto.UpvoteStatus, error)
}

type upvoteService struct {
	repo                upvoteRepo.UpvoteRepository
	suggestionRepo      suggestionRepo.SuggestionRepository
	countCache          *upvoteRepo.CountCache
	notificationService notifService.NotificationService
}

func NewUpvoteService(repo upvoteRepo.UpvoteRepository, suggestionRepo suggestionRepo.SuggestionRepository, countCache *upvoteRepo.CountCache, notificationService notifService.NotificationService) UpvoteService {
	return &upvoteService{
		repo:                repo,
		suggestionRepo:      suggestionRepo,
		countCache:          countCache,
		notificationService: notificationService,
	}
}

// Upvote rejects a duplicate seen before the insert, but absorbs one the unique index catches.
func (s *upvoteService) Upvote(ctx context.Context, suggestionID, userID uuid.UUID) (*dto.UpvoteResult, error) {
	exists, err := s.suggestionRepo.Exists(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("suggestion not found: %w", apperror.ErrNotFound)
	}

	already, err := s.repo.Exists(ctx, suggestionID, userID)
	if err != nil {
		return nil, err
	}
	if already {
		metrics.ObserveUpvote("add", "rejected")
		return nil, apperror.ErrAlreadyUpvoted
	}

	result := &dto.UpvoteResult{Success: true}
	err = s.repo.Create(ctx, &entity.Upvote{SuggestionID: suggestionID, UserID: userID})
	switch {
	case err == nil:
		metrics.ObserveUpvote("add", "created")
	case database.IsUniqueViolation(err):
		slog.Debug("concurrent upvote absorbed",
			slog.String("suggestion_id", suggestionID.String()),
			slog.String("user_id", userID.String()),
		)
		metrics.ObserveUpvote("add", "absorbed")
		result.Message = "Already upvoted"
	case database.IsForeignKeyViolation(err):
		return nil, fmt.Errorf("suggestion not found: %w", apperror.ErrNotFound)
	default:
		return nil, err
	}

	s.countCache.Invalidate(ctx, suggestionID)
	result.UpvoteCount, err = s.repo.CountBySuggestion(ctx, suggestionID)
	if err != nil {
		return nil, err
	}

	if result.Message == "" {
		s.publish(ctx, suggestionID, result.UpvoteCount)
	}
	return result, nil
}

func (s *upvoteService) RemoveUpvote(ctx context.Context, suggestionID, userID uuid.UUID) (*dto.RemoveUpvoteResult, error) {
	removed, err := s.repo.Delete(ctx, suggestionID, userID)
	if err != nil {
		return nil, err
	}

	result := &dto.RemoveUpvoteResult{Success: true, Removed: removed > 0}
	if result.Removed {
		s.countCache.Invalidate(ctx, suggestionID)
		result.Message = "Upvote removed"
		metrics.ObserveUpvote("remove", "removed")
	} else {
		result.Message = "Upvote was already removed"
		metrics.ObserveUpvote("remove", "noop")
	}

	result.UpvoteCount, err = s.repo.CountBySuggestion(ctx, suggestionID)
	if err != nil {
		return nil, err
	}

	if result.Removed {
		s.publish(ctx, suggestionID, result.UpvoteCount)
	}
	return result, nil
}

func (s *upvoteService) Status(ctx context.Context, suggestionID, userID uuid.UUID) (*dto.UpvoteStatus, error) {
	count, err := s.repo.CountBySuggestion(ctx, suggestionID)
	if err != nil {
		return nil, err
	}

	hasUpvoted, err := s.repo.Exists(ctx, suggestionID, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UpvoteStatus{UpvoteCount: count, HasUpvoted: hasUpvoted}, nil
}

func (s *upvoteService) publish(ctx context.Context, suggestionID uuid.UUID, count int64) {
	if s.notificationService == nil {
		return
	}
	s.notificationService.PublishChange(ctx, notifDto.ChangeEvent{
		Type:         notifDto.EventUpvoteChanged,
		SuggestionID: suggestionID,
		UpvoteCount:  &count,
	})
}
