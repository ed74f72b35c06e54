// internal/discovery/cache.go
// Read-through redis cache for pair scores. The key carries a schema version;
// entries written under any other version are treated as misses, so a scoring
// model change invalidates the whole cache without a migration.

package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// scoreCacheVersion bumps whenever the breakdown shape or formulas change
const scoreCacheVersion = 2

// ScoreCache stores computed pair scores
type ScoreCache interface {
	Get(ctx context.Context, userA, userB int64) (*Score, bool)
	Set(ctx context.Context, userA, userB int64, score Score)
}

type redisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScoreCache creates a score cache with the given entry TTL
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) ScoreCache {
	return &redisScoreCache{client: client, ttl: ttl}
}

// cachedScore is the stored payload. Version is embedded alongside the key
// prefix so a corrupted or hand-written entry still fails closed.
type cachedScore struct {
	Version      int                    `json:"version"`
	Overall      int                    `json:"overall"`
	Breakdown    CompatibilityBreakdown `json:"breakdown"`
	Explanations []string               `json:"explanations"`
}

func (c *redisScoreCache) Get(ctx context.Context, userA, userB int64) (*Score, bool) {
	payload, err := c.client.Get(ctx, scoreCacheKey(userA, userB)).Bytes()
	if err != nil {
		RecordScoreCacheLookup(false)
		return nil, false
	}

	var cached cachedScore
	if err := json.Unmarshal(payload, &cached); err != nil || cached.Version != scoreCacheVersion {
		RecordScoreCacheLookup(false)
		return nil, false
	}

	RecordScoreCacheLookup(true)
	return &Score{
		Overall:      cached.Overall,
		Breakdown:    cached.Breakdown,
		Explanations: cached.Explanations,
	}, true
}

func (c *redisScoreCache) Set(ctx context.Context, userA, userB int64, score Score) {
	payload, err := json.Marshal(cachedScore{
		Version:      scoreCacheVersion,
		Overall:      score.Overall,
		Breakdown:    score.Breakdown,
		Explanations: score.Explanations,
	})
	if err != nil {
		return
	}
	// Best-effort write; scoring recomputes on the next miss
	c.client.Set(ctx, scoreCacheKey(userA, userB), payload, c.ttl)
}

// scoreCacheKey normalizes the pair so (a,b) and (b,a) share one entry.
// The location sub-score is mildly direction- and origin-sensitive (travel
// mode, per-request search postcode), so a shared entry can be a few points
// off for the reverse direction. The cache is advisory, never authoritative;
// that staleness is accepted in exchange for twice the hit rate.
func scoreCacheKey(userA, userB int64) string {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("compat:v%d:%d:%d", scoreCacheVersion, lo, hi)
}

// noopScoreCache is used when redis is unavailable
type noopScoreCache struct{}

// NewNoopScoreCache returns a cache that never hits
func NewNoopScoreCache() ScoreCache {
	return noopScoreCache{}
}

func (noopScoreCache) Get(context.Context, int64, int64) (*Score, bool) { return nil, false }
func (noopScoreCache) Set(context.Context, int64, int64, Score)        {}
