package company

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const cacheKeyPrefix = "utamahr:company:"

// CachedSource fronts a Source with redis and collapses concurrent misses.
// Missing settings resolve to Default so documents always get a letterhead.
// A nil redis client disables caching but keeps the fallback behaviour.
type CachedSource struct {
	next  Source
	redis *redis.Client
	ttl   time.Duration
	group singleflight.Group
	log   logrus.FieldLogger
}

func NewCachedSource(next Source, client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *CachedSource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedSource{next: next, redis: client, ttl: ttl, log: log}
}

func CacheKey(tenantID string) string {
	return cacheKeyPrefix + tenantID
}

func (c *CachedSource) Settings(ctx context.Context, tenantID string) (Settings, error) {
	if cached, ok := c.fromCache(ctx, tenantID); ok {
		return cached, nil
	}
	v, err, _ := c.group.Do(tenantID, func() (any, error) {
		settings, err := c.next.Settings(ctx, tenantID)
		if errors.Is(err, ErrSettingsNotFound) {
			settings, err = Default(), nil
		}
		if err != nil {
			return Settings{}, err
		}
		c.store(ctx, tenantID, settings)
		return settings, nil
	})
	if err != nil {
		return Settings{}, err
	}
	return v.(Settings), nil
}

// Invalidate drops the cached letterhead for a tenant.
func (c *CachedSource) Invalidate(ctx context.Context, tenantID string) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, CacheKey(tenantID)).Err()
}

func (c *CachedSource) fromCache(ctx context.Context, tenantID string) (Settings, bool) {
	if c.redis == nil {
		return Settings{}, false
	}
	raw, err := c.redis.Get(ctx, CacheKey(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Settings{}, false
	}
	if err != nil {
		c.log.WithError(err).WithField("tenant_id", tenantID).Warn("company cache read failed")
		return Settings{}, false
	}
	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		c.log.WithError(err).WithField("tenant_id", tenantID).Warn("company cache entry corrupt")
		return Settings{}, false
	}
	return settings, true
}

func (c *CachedSource) store(ctx context.Context, tenantID string, settings Settings) {
	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, CacheKey(tenantID), payload, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("tenant_id", tenantID).Warn("company cache write failed")
	}
}
