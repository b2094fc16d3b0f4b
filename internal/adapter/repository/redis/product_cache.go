package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/redis/go-redis/v9"
)

const productCacheKeyPrefix = "product_detail:"

// ProductCache is a short-lived JSON cache of product details, consulted
// before the database when refreshing cart contents.
type ProductCache struct {
	client *redis.Client
}

// NewProductCache creates a Redis-backed product-detail cache.
func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

func (c *ProductCache) productKey(productID string) string {
	return productCacheKeyPrefix + productID
}

// Get returns the cached product or domain.ErrNotFound on a miss. A corrupt
// entry is evicted and reported as an error.
func (c *ProductCache) Get(ctx context.Context, productID string) (*domain.Product, error) {
	val, err := c.client.Get(ctx, c.productKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product detail for productID %s from redis: %w", productID, err)
	}

	var product domain.Product
	if err := json.Unmarshal(val, &product); err != nil {
		_ = c.Delete(ctx, productID)
		return nil, fmt.Errorf("failed to unmarshal product detail data for productID %s: %w", productID, err)
	}
	return &product, nil
}

// Set caches the product under its own id.
func (c *ProductCache) Set(ctx context.Context, product *domain.Product, ttl time.Duration) error {
	if product == nil || product.ID == "" {
		return errors.New("cannot cache nil product or product with empty ID")
	}

	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product details for productID %s: %w", product.ID, err)
	}
	if err := c.client.Set(ctx, c.productKey(product.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product detail for productID %s to redis: %w", product.ID, err)
	}
	return nil
}

// Delete evicts the cached product.
func (c *ProductCache) Delete(ctx context.Context, productID string) error {
	if err := c.client.Del(ctx, c.productKey(productID)).Err(); err != nil {
		return fmt.Errorf("failed to delete product detail for productID %s from redis: %w", productID, err)
	}
	return nil
}
