package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rfq-intake/internal/common/database"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"

	"github.com/redis/go-redis/v9"
)

// CachedDirectory is a read-through cache over another Directory. Cache
// failures degrade to the inner lookup; a stale or unavailable cache never
// fails a match.
type CachedDirectory struct {
	inner Directory
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

func NewCachedDirectory(inner Directory, rc *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedDirectory {
	return &CachedDirectory{inner: inner, redis: rc, ttl: ttl, log: log}
}

func cacheKey(categorySlug, county string) string {
	return fmt.Sprintf("directory:%s:%s", categorySlug, county)
}

func (d *CachedDirectory) FindCandidates(ctx context.Context, categorySlug, county string) ([]models.Vendor, error) {
	key := cacheKey(categorySlug, county)

	cached, err := d.redis.Get(ctx, key)
	if err == nil {
		var vendors []models.Vendor
		if jsonErr := json.Unmarshal([]byte(cached), &vendors); jsonErr == nil {
			d.log.Debug("Directory cache hit", map[string]interface{}{"key": key})
			return vendors, nil
		}
		d.log.Warn("Corrupt directory cache entry, falling through", map[string]interface{}{
			"key": key,
		})
	} else if err != redis.Nil {
		d.log.Warn("Directory cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	vendors, err := d.inner.FindCandidates(ctx, categorySlug, county)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(vendors); jsonErr == nil {
		if setErr := d.redis.Set(ctx, key, data, d.ttl); setErr != nil {
			d.log.Warn("Directory cache write failed", map[string]interface{}{
				"key":   key,
				"error": setErr.Error(),
			})
		}
	}
	return vendors, nil
}
