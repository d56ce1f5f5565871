package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"provenance.com/innovationhub/internal/modules/notification/dto"
	"provenance.com/innovationhub/internal/observability/metrics"
	"provenance.com/innovationhub/pkg/retry"
)

// ChangesChannel carries suggestion change events to live dashboards.
const ChangesChannel = "suggestions:changes"

type NotificationService interface {
	// NotifyNewSuggestion emails the admin inbox. Callers treat a returned error as log-only.
	NotifyNewSuggestion(ctx context.Context, notice dto.SuggestionNotice) error
	PublishChange(ctx context.Context, event dto.ChangeEvent)
	SubscribeChanges(ctx context.Context) (*redis.PubSub, error)
}

type notificationService struct {
	email       *EmailService
	adminEmail  string
	redisClient *redis.Client
	retryConfig *retry.Config
}

func NewNotificationService(email *EmailService, adminEmail string, redisClient *redis.Client) NotificationService {
	return &notificationService{
		email:       email,
		adminEmail:  adminEmail,
		redisClient: redisClient,
		retryConfig: retry.DefaultConfig(),
	}
}

func (s *notificationService) NotifyNewSuggestion(ctx context.Context, notice dto.SuggestionNotice) error {
	if !s.email.IsConfigured() || s.adminEmail == "" {
		slog.Debug("email notifications disabled, skipping new suggestion notice")
		metrics.ObserveNotification("email", "skipped")
		return nil
	}

	submittedBy := notice.SubmittedBy
	if notice.IsAnonymous {
		submittedBy = "Anonymous"
	}
	html, err := renderSuggestionEmail(suggestionEmailData{
		Title:       notice.Title,
		Content:     notice.Content,
		Category:    notice.Category,
		SubmittedBy: submittedBy,
	})
	if err != nil {
		metrics.ObserveNotification("email", "failed")
		return fmt.Errorf("render suggestion template: %w", err)
	}

	subject := fmt.Sprintf("New Suggestion: %s", notice.Title)
	err = retry.Do(ctx, s.retryConfig, "send suggestion email", func(ctx context.Context) error {
		return s.email.SendHTMLEmail([]string{s.adminEmail}, subject, html)
	})
	if err != nil {
		metrics.ObserveNotification("email", "failed")
		return err
	}

	metrics.ObserveNotification("email", "sent")
	return nil
}

func (s *notificationService) PublishChange(ctx context.Context, event dto.ChangeEvent) {
	if s.redisClient == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.redisClient.Publish(ctx, ChangesChannel, payload).Err(); err != nil {
		slog.Warn("failed to publish suggestion change",
			slog.String("type", event.Type),
			slog.String("error", err.Error()),
		)
		metrics.ObserveNotification("pubsub", "failed")
		return
	}
	metrics.ObserveNotification("pubsub", "sent")
}

func (s *notificationService) SubscribeChanges(ctx context.Context) (*redis.PubSub, error) {
	if s.redisClient == nil {
		return nil, fmt.Errorf("live changes require redis")
	}

	pubsub := s.redisClient.Subscribe(ctx, ChangesChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", ChangesChannel, err)
	}
	return pubsub, nil
}
