// Package cache provides an optional Redis-backed response cache for
// recommendation requests. The engine itself is fast enough to serve uncached;
// the cache exists to absorb repeated identical requests at the HTTP surface.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// DefaultTTL bounds staleness between dataset refreshes
const DefaultTTL = 15 * time.Minute

// CachedResponse is the stored shape for one recommendation run
type CachedResponse struct {
	Merit           models.MeritResult      `json:"merit"`
	Recommendations []models.Recommendation `json:"recommendations"`
	SnapshotVersion string                  `json:"snapshot_version"`
}

// RecommendationCache stores recommendation responses keyed by a criteria digest
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a recommendation cache over a Redis client
func New(client *redis.Client, ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RecommendationCache{client: client, ttl: ttl}
}

// Key derives a stable cache key from the criteria and the snapshot version,
// so a dataset swap naturally invalidates prior entries
func Key(criteria models.RecommendationCriteria, snapshotVersion string) string {
	payload, err := json.Marshal(criteria)
	if err != nil {
		// Criteria is plain data; marshal cannot realistically fail
		return fmt.Sprintf("pakuni:rec:unkeyed:%s", snapshotVersion)
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("pakuni:rec:%s:%s", snapshotVersion, hex.EncodeToString(sum[:16]))
}

// Get returns the cached response for a key, or (nil, false) on miss or error.
// Cache errors are logged and treated as misses: the engine always answers.
func (c *RecommendationCache) Get(ctx context.Context, key string) (*CachedResponse, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}

	var resp CachedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, ignoring")
		return nil, false
	}
	return &resp, true
}

// Set stores a response. Failures are logged, never surfaced.
func (c *RecommendationCache) Set(ctx context.Context, key string, resp *CachedResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Warn().Err(err).Msg("cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
