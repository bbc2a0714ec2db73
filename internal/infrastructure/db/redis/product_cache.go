package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

const (
	productListKey  = "webshop:products"
	defaultCacheTTL = 30 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProductCache keeps the serialised product list in a single Redis key.
// Any catalogue write must call Invalidate.
type ProductCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewProductCache wraps client. A non-positive ttl falls back to 30s.
func NewProductCache(client redis.Cmdable, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

func (c *ProductCache) Get(ctx context.Context) ([]*domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, productListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("product cache get: %w", err)
	}

	products, err := decodeProducts(raw)
	if err != nil {
		return nil, false, err
	}
	return products, true, nil
}

func (c *ProductCache) Set(ctx context.Context, products []*domain.Product) error {
	raw, err := encodeProducts(products)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, productListKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("product cache set: %w", err)
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("product cache invalidate: %w", err)
	}
	return nil
}

func encodeProducts(products []*domain.Product) ([]byte, error) {
	if products == nil {
		products = []*domain.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("product cache encode: %w", err)
	}
	return raw, nil
}

func decodeProducts(raw []byte) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("product cache decode: %w", err)
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}
