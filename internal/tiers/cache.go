package tiers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
	"github.com/yukselticaret/trendyshop-backend/pkg/metrics"
	pkgredis "github.com/yukselticaret/trendyshop-backend/pkg/redis"
)

// Reader loads a product's tier set. Results may come back in any order.
type Reader interface {
	TiersForProduct(ctx context.Context, productID uuid.UUID) ([]models.PriceTier, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	TierCacheKey(productID string) string
}

// CachedReader serves tier sets from Redis and falls through to next on a
// miss. Cache failures are logged and never surface to callers.
type CachedReader struct {
	next    Reader
	cache   cacheStore
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
}

func NewCachedReader(next Reader, cache cacheStore, ttl time.Duration, logg *logger.Logger, m *metrics.PricingMetrics) *CachedReader {
	return &CachedReader{next: next, cache: cache, ttl: ttl, logg: logg, metrics: m}
}

func (c *CachedReader) TiersForProduct(ctx context.Context, productID uuid.UUID) ([]models.PriceTier, error) {
	key := c.cache.TierCacheKey(productID.String())
	start := time.Now()

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var tiers []models.PriceTier
		decodeErr := json.Unmarshal([]byte(raw), &tiers)
		if decodeErr == nil {
			c.metrics.ObserveLookup(metrics.SourceCache, metrics.ResultHit, time.Since(start))
			return tiers, nil
		}
		c.warn(ctx, productID, "tiers.cache.decode_failed", decodeErr)
	case pkgredis.IsMiss(err):
		c.metrics.ObserveLookup(metrics.SourceCache, metrics.ResultMiss, time.Since(start))
	default:
		c.metrics.ObserveLookup(metrics.SourceCache, metrics.ResultError, time.Since(start))
		c.warn(ctx, productID, "tiers.cache.get_failed", err)
	}

	start = time.Now()
	tiers, err := c.next.TiersForProduct(ctx, productID)
	if err != nil {
		c.metrics.ObserveLookup(metrics.SourceDB, metrics.ResultError, time.Since(start))
		return nil, err
	}
	c.metrics.ObserveLookup(metrics.SourceDB, metrics.ResultHit, time.Since(start))

	if payload, err := json.Marshal(tiers); err == nil {
		if err := c.cache.Set(ctx, key, payload, c.ttl); err != nil {
			c.warn(ctx, productID, "tiers.cache.set_failed", err)
		}
	}
	return tiers, nil
}

// Invalidate drops the cached tier set for productID. A nil reader is a no-op.
func (c *CachedReader) Invalidate(ctx context.Context, productID uuid.UUID) error {
	if c == nil {
		return nil
	}
	return c.cache.Del(ctx, c.cache.TierCacheKey(productID.String()))
}

func (c *CachedReader) warn(ctx context.Context, productID uuid.UUID, msg string, err error) {
	if c.logg == nil {
		return
	}
	ctx = c.logg.WithProductID(ctx, productID.String())
	ctx = c.logg.WithField(ctx, "error", err.Error())
	c.logg.Warn(ctx, msg)
}
