package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"provenance.com/innovationhub/internal/entity"
	"provenance.com/innovationhub/internal/mocks"
	"provenance.com/innovationhub/internal/modules/category/dto"
	"provenance.com/innovationhub/pkg/apperror"
)

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(repo *mocks.MockCategoryRepository)
		req       dto.CreateCategoryRequest
		wantErr   error
		wantColor string
	}{
		{
			name: "creates with default color and active flag",
			setup: func(repo *mocks.MockCategoryRepository) {
				repo.On("FindByName", mock.Anything, "Bug Report").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool {
					return c.IsActive && c.Name == "Bug Report"
				})).Run(func(args mock.Arguments) {
					c := args.Get(1).(*entity.Category)
					if c.Color == "" {
						c.Color = entity.DefaultCategoryColor
					}
				}).Return(nil)
			},
			req:       dto.CreateCategoryRequest{Name: " Bug Report "},
			wantColor: entity.DefaultCategoryColor,
		},
		{
			name: "duplicate name is a conflict",
			setup: func(repo *mocks.MockCategoryRepository) {
				repo.On("FindByName", mock.Anything, "General").Return(&entity.Category{ID: uuid.New(), Name: "General"}, nil)
			},
			req:     dto.CreateCategoryRequest{Name: "General"},
			wantErr: apperror.ErrConflict,
		},
		{
			name: "unique violation on insert is a conflict",
			setup: func(repo *mocks.MockCategoryRepository) {
				repo.On("FindByName", mock.Anything, "UI/UX").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			req:     dto.CreateCategoryRequest{Name: "UI/UX", Color: "#8B5CF6"},
			wantErr: apperror.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCategoryRepository)
			tt.setup(repo)

			res, err := NewCategoryService(repo).CreateCategory(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantColor, res.Color)
			assert.True(t, res.IsActive)
		})
	}
}

func TestCreateCategory_InactiveExplicitly(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)
	repo.On("FindByName", mock.Anything, "Old").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	inactive := false

	res, err := NewCategoryService(repo).CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Old", IsActive: &inactive})

	require.NoError(t, err)
	assert.False(t, res.IsActive)
}

func TestUpdateCategory_RenameOntoExisting(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&entity.Category{ID: id, Name: "Perf"}, nil)
	repo.On("FindByName", mock.Anything, "General").Return(&entity.Category{ID: uuid.New(), Name: "General"}, nil)
	name := "General"

	_, err := NewCategoryService(repo).UpdateCategory(context.Background(), id, dto.UpdateCategoryRequest{Name: &name})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCategory_PartialFields(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&entity.Category{ID: id, Name: "Perf", Color: "#000000", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(int64(1), nil)
	color := "#F59E0B"

	res, err := NewCategoryService(repo).UpdateCategory(context.Background(), id, dto.UpdateCategoryRequest{Color: &color})

	require.NoError(t, err)
	assert.Equal(t, "Perf", res.Name)
	assert.Equal(t, "#F59E0B", res.Color)
	assert.True(t, res.IsActive)
}

func TestUpdateCategory_DeletedDuringUpdate(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&entity.Category{ID: id, Name: "Perf", Color: "#000000", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool {
		return c.ID == id && !c.IsActive
	})).Return(int64(0), nil)
	inactive := false

	_, err := NewCategoryService(repo).UpdateCategory(context.Background(), id, dto.UpdateCategoryRequest{IsActive: &inactive})

	assert.ErrorIs(t, err, apperror.ErrGone)
}

func TestDeleteCategory(t *testing.T) {
	id := uuid.New()

	t.Run("not found", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
		assert.ErrorIs(t, NewCategoryService(repo).DeleteCategory(context.Background(), id), apperror.ErrNotFound)
	})

	t.Run("gone between read and delete", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("FindByID", mock.Anything, id).Return(&entity.Category{ID: id}, nil)
		repo.On("Delete", mock.Anything, id).Return(int64(0), nil)
		assert.ErrorIs(t, NewCategoryService(repo).DeleteCategory(context.Background(), id), apperror.ErrGone)
	})

	t.Run("deleted", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("FindByID", mock.Anything, id).Return(&entity.Category{ID: id}, nil)
		repo.On("Delete", mock.Anything, id).Return(int64(1), nil)
		assert.NoError(t, NewCategoryService(repo).DeleteCategory(context.Background(), id))
	})
}

func TestSeedDefaults_SkipsExisting(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)
	repo.On("FindByName", mock.Anything, "General").Return(&entity.Category{Name: "General"}, nil)
	repo.On("FindByName", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := NewCategoryService(repo).SeedDefaults(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"General"}, result.Skipped)
	assert.Len(t, result.Created, len(DefaultCategories)-1)
	repo.AssertNumberOfCalls(t, "Create", len(DefaultCategories)-1)
}

func TestSeedDefaults_PropagatesRepoError(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)
	repo.On("FindByName", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := NewCategoryService(repo).SeedDefaults(context.Background())
	assert.Error(t, err)
}
