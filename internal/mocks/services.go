package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"provenance.com/innovationhub/internal/entity"
	notifDto "provenance.com/innovationhub/internal/modules/notification/dto"
	statDto "provenance.com/innovationhub/internal/modules/stat/dto"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyNewSuggestion(ctx context.Context, notice notifDto.SuggestionNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockNotificationService) PublishChange(ctx context.Context, event notifDto.ChangeEvent) {
	m.Called(ctx, event)
}

func (m *MockNotificationService) SubscribeChanges(ctx context.Context) (*redis.PubSub, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redis.PubSub), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSearchService) IndexSuggestion(suggestion *entity.Suggestion) error {
	args := m.Called(suggestion)
	return args.Error(0)
}

func (m *MockSearchService) DeleteSuggestion(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSearchService) SearchSuggestions(ctx context.Context, query string, limit int) ([]uuid.UUID, int64, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]uuid.UUID), args.Get(1).(int64), args.Error(2)
}

type MockStatService struct {
	mock.Mock
}

func (m *MockStatService) StatusCounts(ctx context.Context) (*statDto.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statDto.StatusCounts), args.Error(1)
}

func (m *MockStatService) UpvoteCounts(ctx context.Context, suggestionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, suggestionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockStatService) ChangesSince(ctx context.Context) (*statDto.ChangesSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statDto.ChangesSummary), args.Error(1)
}
