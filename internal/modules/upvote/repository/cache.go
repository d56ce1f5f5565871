package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CountCache keeps upvote counts in Redis under upvotes:count:<suggestion_id>.
// Every invalidation bumps upvotes:gen:<suggestion_id>; a fill only lands if the
// generation it started from is still current.
// A nil client turns every method into a no-op so callers fall through to the database.
type CountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Generations records the invalidation generation seen for each missed id.
type Generations map[uuid.UUID]string

// KEYS[1] count key, KEYS[2] generation key; ARGV[1] count, ARGV[2] expected generation, ARGV[3] ttl ms.
var setIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or ''
if cur ~= ARGV[2] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

func NewCountCache(rdb *redis.Client, ttl time.Duration) *CountCache {
	return &CountCache{rdb: rdb, ttl: ttl}
}

func countKey(id uuid.UUID) string {
	return fmt.Sprintf("upvotes:count:%s", id.String())
}

func genKey(id uuid.UUID) string {
	return fmt.Sprintf("upvotes:gen:%s", id.String())
}

// GetMany returns cached counts, the ids that missed, and the generation of each miss.
// Pass the generations to SetMany after reading the misses from the database.
func (c *CountCache) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, []uuid.UUID, Generations) {
	hits := make(map[uuid.UUID]int64, len(ids))
	gens := make(Generations, len(ids))
	if c == nil || c.rdb == nil || len(ids) == 0 {
		return hits, ids, gens
	}

	keys := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		keys = append(keys, countKey(id), genKey(id))
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		slog.Warn("upvote count cache read failed", slog.String("error", err.Error()))
		return hits, ids, gens
	}

	var misses []uuid.UUID
	for i, id := range ids {
		gen, _ := vals[2*i+1].(string)
		s, ok := vals[2*i].(string)
		if !ok {
			misses = append(misses, id)
			gens[id] = gen
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			misses = append(misses, id)
			gens[id] = gen
			continue
		}
		hits[id] = n
	}
	return hits, misses, gens
}

// SetMany stores counts whose generation has not moved since GetMany. Ids without a
// recorded generation are skipped.
func (c *CountCache) SetMany(ctx context.Context, counts map[uuid.UUID]int64, gens Generations) {
	if c == nil || c.rdb == nil || len(counts) == 0 {
		return
	}

	ttl := strconv.FormatInt(c.ttl.Milliseconds(), 10)
	pipe := c.rdb.Pipeline()
	for id, n := range counts {
		gen, ok := gens[id]
		if !ok {
			continue
		}
		setIfCurrent.Eval(ctx, pipe, []string{countKey(id), genKey(id)}, n, gen, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("upvote count cache write failed", slog.String("error", err.Error()))
	}
}

func (c *CountCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(id))
		pipe.Expire(ctx, genKey(id), c.genTTL())
		pipe.Del(ctx, countKey(id))
		return nil
	})
	if err != nil {
		slog.Warn("upvote count cache invalidate failed",
			slog.String("suggestion_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}

// genTTL outlives any cached count so an in-flight fill cannot see the generation reset.
func (c *CountCache) genTTL() time.Duration {
	if c.ttl <= 0 {
		return 24 * time.Hour
	}
	return 2*c.ttl + time.Minute
}
