package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/propdock/propdock-backend/pkg/logger"
	"github.com/propdock/propdock-backend/pkg/redis"
)

// CatalogCache caches resolved catalogs per currency. Misses and backend
// failures both report ok=false so callers fall through to the database.
type CatalogCache interface {
	Get(ctx context.Context, currencyCode string) (*Catalog, bool)
	Set(ctx context.Context, catalog *Catalog)
	Invalidate(ctx context.Context, currencyCodes ...string)
}

type redisCatalogCache struct {
	client *redis.Client
	logg   *logger.Logger
	ttl    time.Duration
}

// NewCatalogCache builds a redis-backed catalog cache.
func NewCatalogCache(client *redis.Client, logg *logger.Logger, ttl time.Duration) CatalogCache {
	return &redisCatalogCache{client: client, logg: logg, ttl: ttl}
}

func (c *redisCatalogCache) Get(ctx context.Context, currencyCode string) (*Catalog, bool) {
	raw, err := c.client.Get(ctx, c.client.CatalogKey(currencyCode))
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logg.Warn(ctx, "catalog cache read failed: "+err.Error())
		}
		return nil, false
	}
	var catalog Catalog
	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		c.logg.Warn(ctx, "catalog cache entry corrupt: "+err.Error())
		return nil, false
	}
	return &catalog, true
}

func (c *redisCatalogCache) Set(ctx context.Context, catalog *Catalog) {
	payload, err := json.Marshal(catalog)
	if err != nil {
		c.logg.Warn(ctx, "catalog cache encode failed: "+err.Error())
		return
	}
	key := c.client.CatalogKey(catalog.CurrencyCode)
	if err := c.client.Set(ctx, key, payload, c.ttl); err != nil {
		c.logg.Warn(ctx, "catalog cache write failed: "+err.Error())
	}
}

func (c *redisCatalogCache) Invalidate(ctx context.Context, currencyCodes ...string) {
	if len(currencyCodes) == 0 {
		return
	}
	keys := make([]string, 0, len(currencyCodes))
	for _, code := range currencyCodes {
		keys = append(keys, c.client.CatalogKey(code))
	}
	if err := c.client.Del(ctx, keys...); err != nil {
		c.logg.Warn(ctx, "catalog cache invalidation failed: "+err.Error())
	}
}
