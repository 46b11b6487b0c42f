package httpx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/adityarizkyr/go-shop-api/internal/catalog"
	"github.com/adityarizkyr/go-shop-api/internal/redisx"
)

// ProductCache is the redis copy of single products served by point lookups.
// Every inventory mutation must go through Invalidate, order placement
// included, or reads keep seeing pre-order stock until the TTL runs out.
// A nil cache is a no-op.
type ProductCache struct{ Redis *redis.Client }

func (c *ProductCache) Get(ctx context.Context, id string) (catalog.Product, bool) {
	if c == nil || c.Redis == nil {
		return catalog.Product{}, false
	}
	s, err := c.Redis.Get(ctx, c.key(id)).Result()
	if err != nil || s == "" {
		return catalog.Product{}, false
	}
	var p catalog.Product
	if json.Unmarshal([]byte(s), &p) != nil {
		return catalog.Product{}, false
	}
	return p, true
}

func (c *ProductCache) Set(ctx context.Context, p catalog.Product) {
	if c == nil || c.Redis == nil {
		return
	}
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = c.Redis.Set(ctx, c.key(p.ID), b, redisx.TTLProductCache).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.Redis == nil {
		return
	}
	_ = c.Redis.Del(ctx, c.key(id)).Err()
}

func (c *ProductCache) key(id string) string {
	return fmt.Sprintf(redisx.KeyProduct, id)
}
