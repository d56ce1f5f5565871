// Package mocks holds testify mocks for the repository interfaces shared across module tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"provenance.com/innovationhub/internal/entity"
	suggestionRepo "provenance.com/innovationhub/internal/modules/suggestion/repository"
)

type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) Create(ctx context.Context, suggestion *entity.Suggestion) error {
	args := m.Called(ctx, suggestion)
	return args.Error(0)
}

func (m *MockSuggestionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Suggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSuggestionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Suggestion, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) FindAll(ctx context.Context, filter suggestionRepo.Filter, offset, limit int) ([]*entity.Suggestion, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Suggestion), args.Get(1).(int64), args.Error(2)
}

func (m *MockSuggestionRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockSuggestionRepository) Latest(ctx context.Context) (*entity.Suggestion, int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*entity.Suggestion), args.Get(1).(int64), args.Error(2)
}

type MockUpvoteRepository struct {
	mock.Mock
}

func (m *MockUpvoteRepository) Create(ctx context.Context, upvote *entity.Upvote) error {
	args := m.Called(ctx, upvote)
	return args.Error(0)
}

func (m *MockUpvoteRepository) Delete(ctx context.Context, suggestionID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, suggestionID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUpvoteRepository) Exists(ctx context.Context, suggestionID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, suggestionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUpvoteRepository) CountBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, suggestionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUpvoteRepository) CountBySuggestionIDs(ctx context.Context, suggestionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, suggestionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockUpvoteRepository) DeleteBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, suggestionID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindBySuggestion(ctx context.Context, suggestionID uuid.UUID, includeInternal bool) ([]*entity.Comment, error) {
	args := m.Called(ctx, suggestionID, includeInternal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) DeleteBySuggestion(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, suggestionID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
