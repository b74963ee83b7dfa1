// Package cache decorates catalog reads with a Redis cache.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

const productKeyPrefix = "vetpos:product:"

// ProductCache serves catalog snapshots from Redis and falls back to the
// wrapped reader for misses. Redis failures degrade to uncached reads.
type ProductCache struct {
	rdb   *redis.Client
	inner portsrepo.ProductReader
	ttl   time.Duration
}

var _ portsrepo.ProductReader = (*ProductCache)(nil)

// NewProductCache wraps inner.
func NewProductCache(rdb *redis.Client, inner portsrepo.ProductReader, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, inner: inner, ttl: ttl}
}

// ProductKey returns the cache key of a product.
func ProductKey(productID string) string {
	return productKeyPrefix + productID
}

func (c *ProductCache) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	found := make(map[string]domain.Product, len(productIDs))
	missing := productIDs

	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = ProductKey(id)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		logger.Warn("Catalog cache read failed", slog.String("error", err.Error()))
	} else {
		missing = make([]string, 0, len(productIDs))
		for i, v := range vals {
			raw, ok := v.(string)
			if !ok {
				missing = append(missing, productIDs[i])
				continue
			}
			var p domain.Product
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				missing = append(missing, productIDs[i])
				continue
			}
			found[productIDs[i]] = p
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := c.inner.FindProductsByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	pipe := c.rdb.Pipeline()
	for id, p := range loaded {
		found[id] = p
		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		pipe.Set(ctx, ProductKey(id), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Catalog cache write failed", slog.String("error", err.Error()))
	}
	return found, nil
}

// Invalidate drops cached snapshots.
func (c *ProductCache) Invalidate(ctx context.Context, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = ProductKey(id)
	}
	return c.rdb.Del(ctx, keys...).Err()
}
