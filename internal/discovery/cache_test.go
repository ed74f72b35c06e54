package discovery

import "testing"

func TestScoreCacheKeyNormalizesPairOrder(t *testing.T) {
	if scoreCacheKey(7, 3) != scoreCacheKey(3, 7) {
		t.Error("pair order must not change the cache key")
	}
	if scoreCacheKey(3, 7) != "compat:v2:3:7" {
		t.Errorf("unexpected key: %s", scoreCacheKey(3, 7))
	}
}

func TestNoopScoreCacheNeverHits(t *testing.T) {
	cache := NewNoopScoreCache()
	if _, ok := cache.Get(nil, 1, 2); ok {
		t.Error("noop cache must always miss")
	}
}
