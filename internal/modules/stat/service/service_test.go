package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"provenance.com/innovationhub/internal/entity"
	"provenance.com/innovationhub/internal/mocks"
	upvoteRepo "provenance.com/innovationhub/internal/modules/upvote/repository"
)

func TestStatusCounts_UnknownStatusCountsTowardTotal(t *testing.T) {
	suggestions := new(mocks.MockSuggestionRepository)
	suggestions.On("CountByStatus", mock.Anything).Return(map[string]int64{
		entity.StatusPending:    4,
		entity.StatusInProgress: 2,
		entity.StatusCompleted:  1,
		"archived":              3,
	}, nil)

	counts, err := NewStatService(suggestions, new(mocks.MockUpvoteRepository), nil).StatusCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.Total)
	assert.Equal(t, int64(4), counts.Pending)
	assert.Equal(t, int64(2), counts.InProgress)
	assert.Equal(t, int64(1), counts.Completed)
	assert.Zero(t, counts.Approved)
	assert.Zero(t, counts.Rejected)
}

func TestUpvoteCounts_SingleBatchedQueryWithoutCache(t *testing.T) {
	upvotes := new(mocks.MockUpvoteRepository)
	a, b := uuid.New(), uuid.New()
	upvotes.On("CountBySuggestionIDs", mock.Anything, []uuid.UUID{a, b}).
		Return(map[uuid.UUID]int64{a: 2, b: 0}, nil).Once()

	svc := NewStatService(new(mocks.MockSuggestionRepository), upvotes, upvoteRepo.NewCountCache(nil, time.Minute))
	counts, err := svc.UpvoteCounts(context.Background(), []uuid.UUID{a, b, a})

	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int64{a: 2, b: 0}, counts)
	upvotes.AssertNumberOfCalls(t, "CountBySuggestionIDs", 1)
}

func TestUpvoteCounts_CacheServesSecondCall(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	upvotes := new(mocks.MockUpvoteRepository)
	a, b := uuid.New(), uuid.New()
	upvotes.On("CountBySuggestionIDs", mock.Anything, []uuid.UUID{a, b}).
		Return(map[uuid.UUID]int64{a: 7, b: 1}, nil).Once()

	svc := NewStatService(new(mocks.MockSuggestionRepository), upvotes, upvoteRepo.NewCountCache(rdb, time.Minute))

	_, err := svc.UpvoteCounts(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)

	counts, err := svc.UpvoteCounts(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(7), counts[a])
	assert.Equal(t, int64(1), counts[b])
	upvotes.AssertNumberOfCalls(t, "CountBySuggestionIDs", 1)
}

func TestUpvoteCounts_FillLosesToConcurrentUpvote(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	cache := upvoteRepo.NewCountCache(rdb, 10*time.Minute)

	sid := uuid.New()
	upvotes := new(mocks.MockUpvoteRepository)
	upvotes.On("CountBySuggestionIDs", mock.Anything, []uuid.UUID{sid}).
		Run(func(mock.Arguments) {
			// an upvote commits and invalidates while the count query is in flight
			cache.Invalidate(context.Background(), sid)
		}).
		Return(map[uuid.UUID]int64{sid: 0}, nil).Once()
	upvotes.On("CountBySuggestionIDs", mock.Anything, []uuid.UUID{sid}).
		Return(map[uuid.UUID]int64{sid: 1}, nil).Once()

	svc := NewStatService(new(mocks.MockSuggestionRepository), upvotes, cache)

	counts, err := svc.UpvoteCounts(context.Background(), []uuid.UUID{sid})
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts[sid])

	counts, err = svc.UpvoteCounts(context.Background(), []uuid.UUID{sid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[sid])
	upvotes.AssertNumberOfCalls(t, "CountBySuggestionIDs", 2)
}

func TestUpvoteCounts_Empty(t *testing.T) {
	svc := NewStatService(new(mocks.MockSuggestionRepository), new(mocks.MockUpvoteRepository), nil)

	counts, err := svc.UpvoteCounts(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestChangesSince(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		suggestions := new(mocks.MockSuggestionRepository)
		suggestions.On("Latest", mock.Anything).Return(nil, int64(0), nil)

		summary, err := NewStatService(suggestions, nil, nil).ChangesSince(context.Background())

		require.NoError(t, err)
		assert.Zero(t, summary.Count)
		assert.Nil(t, summary.MostRecentID)
		assert.Nil(t, summary.MostRecentCreatedAt)
	})

	t.Run("latest suggestion", func(t *testing.T) {
		latest := &entity.Suggestion{ID: uuid.New(), CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
		suggestions := new(mocks.MockSuggestionRepository)
		suggestions.On("Latest", mock.Anything).Return(latest, int64(12), nil)

		summary, err := NewStatService(suggestions, nil, nil).ChangesSince(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(12), summary.Count)
		assert.Equal(t, latest.ID, *summary.MostRecentID)
		assert.True(t, latest.CreatedAt.Equal(*summary.MostRecentCreatedAt))
	})
}
