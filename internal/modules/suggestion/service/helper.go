package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"provenance.com/innovationhub/internal/entity"
	notifDto "provenance.com/innovationhub/internal/modules/notification/dto"
	"provenance.com/innovationhub/internal/modules/suggestion/dto"
	"provenance.com/innovationhub/pkg/ratelimiter"
)

const notifyTimeout = 30 * time.Second

func (s *suggestionService) checkCreateRateLimit(ctx context.Context, userID uuid.UUID) (func(), error) {
	if s.config.CreateCooldown <= 0 {
		return func() {}, nil
	}

	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, userID, ratelimiter.ScopeSuggestion, s.config.CreateCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, userID, ratelimiter.ScopeSuggestion)
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("please wait %.0f seconds before submitting another suggestion", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	return func() {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, ratelimiter.ScopeSuggestion)
	}, nil
}

func (s *suggestionService) clampLimit(limit, fallback int) int {
	if limit < 1 {
		limit = fallback
	}
	if limit > s.config.MaxPageSize {
		limit = s.config.MaxPageSize
	}
	return limit
}

func (s *suggestionService) toResponses(ctx context.Context, suggestions []*entity.Suggestion) ([]dto.SuggestionResponse, error) {
	items := make([]dto.SuggestionResponse, 0, len(suggestions))
	if len(suggestions) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, 0, len(suggestions))
	for _, suggestion := range suggestions {
		ids = append(ids, suggestion.ID)
	}
	counts, err := s.statService.UpvoteCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, suggestion := range suggestions {
		items = append(items, dto.NewSuggestionResponse(suggestion, counts[suggestion.ID]))
	}
	return items, nil
}

func (s *suggestionService) indexSuggestion(suggestion *entity.Suggestion) {
	if s.searchService == nil || !s.searchService.Enabled() {
		return
	}
	if err := s.searchService.IndexSuggestion(suggestion); err != nil {
		slog.Warn("failed to index suggestion",
			slog.String("suggestion_id", suggestion.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *suggestionService) publish(ctx context.Context, event notifDto.ChangeEvent) {
	if s.notificationService == nil {
		return
	}
	s.notificationService.PublishChange(ctx, event)
}

// notifyAdmin emails the admin in the background; the submission never waits on or fails because of it.
func (s *suggestionService) notifyAdmin(suggestion *entity.Suggestion) {
	if s.notificationService == nil {
		return
	}

	notice := notifDto.SuggestionNotice{
		Title:       suggestion.Title,
		Content:     suggestion.Content,
		Category:    "Uncategorized",
		SubmittedBy: "Unknown User",
		IsAnonymous: suggestion.IsAnonymous,
	}
	if suggestion.Category != nil {
		notice.Category = suggestion.Category.Name
	}
	if suggestion.SubmittedBy != nil {
		notice.SubmittedBy = suggestion.SubmittedBy.Name
		if notice.SubmittedBy == "" {
			notice.SubmittedBy = suggestion.SubmittedBy.Email
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notificationService.NotifyNewSuggestion(ctx, notice); err != nil {
			slog.Error("failed to send suggestion notification",
				slog.String("suggestion_id", suggestion.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}()
}
