package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPageCache shares rendered pages between server instances.
// Redis errors are logged and treated as misses.
type RedisPageCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisPageCache(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) *RedisPageCache {
	if ttl <= 0 {
		ttl = TTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisPageCache{client: client, ttl: ttl, log: log}
}

func (r *RedisPageCache) Get(ctx context.Context, key string) (*models.CatalogPage, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.Warn("⚠️ page cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var page models.CatalogPage
	if err := json.Unmarshal(raw, &page); err != nil {
		r.log.Warn("⚠️ page cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (r *RedisPageCache) Set(ctx context.Context, key string, page *models.CatalogPage) {
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.log.Warn("⚠️ page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisPageCache) Invalidate(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, "catalog:page:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.log.Warn("⚠️ page cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("⚠️ page cache invalidate failed", zap.Error(err))
		return
	}
	r.log.Info("✅ page cache invalidated", zap.Int("keys", len(keys)))
}
