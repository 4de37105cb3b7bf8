// Package localcache is the in-process domain.Cache used when no Redis is configured.
package localcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"

	"guest_reviews/internal/adapters/observability"
)

type Cache struct{ c *cache.Cache }

func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Cache{c: cache.New(defaultTTL, 2*defaultTTL)}
}

// Values are stored encoded, like the Redis cache, so a caller never
// shares memory with a cached entry.
func (l *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, found := l.c.Get(key)
	if !found {
		observability.ObserveCache("local", "miss")
		return false, nil
	}
	observability.ObserveCache("local", "hit")
	return true, json.Unmarshal(v.([]byte), dst)
}

func (l *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ttl := cache.DefaultExpiration
	if ttlSec > 0 {
		ttl = time.Duration(ttlSec) * time.Second
	}
	observability.ObserveCache("local", "set")
	l.c.Set(key, b, ttl)
	return nil
}

func (l *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("local", "del")
	l.c.Delete(key)
	return nil
}
