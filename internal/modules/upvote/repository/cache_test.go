package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CountCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCountCache(rdb, time.Minute), mr
}

func TestCountCache_MissThenHit(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	hits, misses, gens := cache.GetMany(ctx, []uuid.UUID{a, b})
	assert.Empty(t, hits)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, misses)

	cache.SetMany(ctx, map[uuid.UUID]int64{a: 3, b: 0}, gens)

	hits, misses, _ = cache.GetMany(ctx, []uuid.UUID{a, b})
	assert.Empty(t, misses)
	assert.Equal(t, int64(3), hits[a])
	assert.Equal(t, int64(0), hits[b])

	ttl := mr.TTL(countKey(a))
	assert.Equal(t, time.Minute, ttl)
}

func TestCountCache_Invalidate(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	id := uuid.New()

	_, _, gens := cache.GetMany(ctx, []uuid.UUID{id})
	cache.SetMany(ctx, map[uuid.UUID]int64{id: 5}, gens)
	require.True(t, mr.Exists(countKey(id)))

	cache.Invalidate(ctx, id)
	assert.False(t, mr.Exists(countKey(id)))
	assert.True(t, mr.Exists(genKey(id)))
}

func TestCountCache_StaleFillAfterInvalidateIsDropped(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	id := uuid.New()

	_, misses, gens := cache.GetMany(ctx, []uuid.UUID{id})
	require.Equal(t, []uuid.UUID{id}, misses)

	cache.Invalidate(ctx, id)
	cache.SetMany(ctx, map[uuid.UUID]int64{id: 0}, gens)
	assert.False(t, mr.Exists(countKey(id)))

	_, _, gens = cache.GetMany(ctx, []uuid.UUID{id})
	cache.SetMany(ctx, map[uuid.UUID]int64{id: 1}, gens)

	hits, misses, _ := cache.GetMany(ctx, []uuid.UUID{id})
	assert.Empty(t, misses)
	assert.Equal(t, int64(1), hits[id])
}

func TestCountCache_SetWithoutGenerationIsSkipped(t *testing.T) {
	cache, mr := newTestCache(t)
	id := uuid.New()

	cache.SetMany(context.Background(), map[uuid.UUID]int64{id: 2}, nil)
	assert.False(t, mr.Exists(countKey(id)))
}

func TestCountCache_NilClientIsNoop(t *testing.T) {
	cache := NewCountCache(nil, time.Minute)
	ids := []uuid.UUID{uuid.New()}

	hits, misses, gens := cache.GetMany(context.Background(), ids)
	assert.Empty(t, hits)
	assert.Equal(t, ids, misses)

	cache.SetMany(context.Background(), map[uuid.UUID]int64{ids[0]: 1}, gens)
	cache.Invalidate(context.Background(), ids[0])
}

func TestCountCache_ReadErrorFallsThrough(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()
	ids := []uuid.UUID{uuid.New()}

	hits, misses, _ := cache.GetMany(context.Background(), ids)
	assert.Empty(t, hits)
	assert.Equal(t, ids, misses)
}
