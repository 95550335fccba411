// Package cache keeps JSON values with a time-to-live in a kv.Store, so the
// cache is shared by every instance pointing at the same redis, database,
// mongo or s3 backend.
//
//	c := cache.New(store, "revoshop:cache:")
//	products, hit, err := cache.Remember(ctx, c, "catalog:products", time.Minute, fetch)
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

type entry struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Value     json.RawMessage `json:"value"`
}

type Cache struct {
	store  kv.Store
	prefix string
	now    func() time.Time
}

func New(store kv.Store, prefix string) *Cache {
	return &Cache{store: store, prefix: prefix, now: time.Now}
}

// Get unmarshals the cached value into dest. Returns true on a cache hit,
// false on miss, expiry or error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.store.Get(ctx, c.prefix+key)
	if err != nil {
		return false
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return false
	}
	if !c.now().Before(e.ExpiresAt) {
		return false
	}
	return json.Unmarshal(e.Value, dest) == nil
}

// Set stores value under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("cache: ttl must be positive")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(entry{ExpiresAt: c.now().Add(ttl).UTC(), Value: data})
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.prefix+key, string(raw))
}

// Forget drops key.
func (c *Cache) Forget(ctx context.Context, key string) error {
	return c.store.Remove(ctx, c.prefix+key)
}

// Remember returns the cached value for key, or calls fn and caches its
// result for ttl. Errors from fn are returned and never cached. A failed
// cache write does not fail the call.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func() (T, error)) (T, bool, error) {
	var v T
	if c.Get(ctx, key, &v) {
		return v, true, nil
	}

	v, err := fn()
	if err != nil {
		return v, false, err
	}
	_ = c.Set(ctx, key, v, ttl)
	return v, false, nil
}
