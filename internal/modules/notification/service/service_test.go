package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provenance.com/innovationhub/internal/modules/notification/dto"
	"provenance.com/innovationhub/pkg/retry"
)

func fastRetry() *retry.Config {
	return &retry.Config{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, BackoffMultiplier: 1}
}

func TestNotifyNewSuggestion_AnonymousHidesSubmitter(t *testing.T) {
	email := NewEmailService(EmailConfig{Host: "smtp.example.com", Port: "587", From: "hub@example.com"})
	var sent string
	email.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		sent = string(msg)
		return nil
	}

	svc := NewNotificationService(email, "admin@example.com", nil)
	err := svc.NotifyNewSuggestion(context.Background(), dto.SuggestionNotice{
		Title:       "Dark mode",
		Content:     "Please",
		Category:    "UI/UX",
		SubmittedBy: "Grace Hopper",
		IsAnonymous: true,
	})

	require.NoError(t, err)
	assert.Contains(t, sent, "Anonymous")
	assert.NotContains(t, sent, "Grace Hopper")
}

func TestNotifyNewSuggestion_RetriesThenFails(t *testing.T) {
	email := NewEmailService(EmailConfig{Host: "smtp.example.com", Port: "587", From: "hub@example.com"})
	attempts := 0
	email.send = func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		return errors.New("421 try later")
	}

	svc := NewNotificationService(email, "admin@example.com", nil).(*notificationService)
	svc.retryConfig = fastRetry()

	err := svc.NotifyNewSuggestion(context.Background(), dto.SuggestionNotice{Title: "x"})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestNotifyNewSuggestion_UnconfiguredIsNoop(t *testing.T) {
	svc := NewNotificationService(NewEmailService(EmailConfig{}), "admin@example.com", nil)
	assert.NoError(t, svc.NotifyNewSuggestion(context.Background(), dto.SuggestionNotice{Title: "x"}))
}

func TestPublishChange_DeliversToSubscriber(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	svc := NewNotificationService(nil, "", rdb)
	ctx := context.Background()

	pubsub, err := svc.SubscribeChanges(ctx)
	require.NoError(t, err)
	defer pubsub.Close()

	id := uuid.New()
	svc.PublishChange(ctx, dto.ChangeEvent{Type: dto.EventSuggestionCreated, SuggestionID: id, Status: "pending"})

	select {
	case msg := <-pubsub.Channel():
		var event dto.ChangeEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, dto.EventSuggestionCreated, event.Type)
		assert.Equal(t, id, event.SuggestionID)
		assert.False(t, event.OccurredAt.IsZero())
		assert.False(t, strings.Contains(msg.Payload, "submittedBy"))
	case <-time.After(2 * time.Second):
		t.Fatal("no change event received")
	}
}

func TestSubscribeChanges_WithoutRedis(t *testing.T) {
	svc := NewNotificationService(nil, "", nil)

	_, err := svc.SubscribeChanges(context.Background())
	assert.Error(t, err)

	svc.PublishChange(context.Background(), dto.ChangeEvent{Type: dto.EventSuggestionDeleted})
}

func TestNotifyNewSuggestion_TitleCannotAddHeaders(t *testing.T) {
	email := NewEmailService(EmailConfig{Host: "smtp.example.com", Port: "587", From: "hub@example.com"})
	var sent string
	email.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		sent = string(msg)
		return nil
	}

	svc := NewNotificationService(email, "admin@example.com", nil)
	err := svc.NotifyNewSuggestion(context.Background(), dto.SuggestionNotice{
		Title:   "Hi\r\nBcc: attacker@evil.test",
		Content: "body",
	})

	require.NoError(t, err)
	head, _, _ := strings.Cut(sent, "\r\n\r\n")
	assert.NotContains(t, head, "\r\nBcc:")
	assert.Contains(t, head, "Subject: New Suggestion: Hi  Bcc: attacker@evil.test")
}
