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

const cartKeyPrefix = "cart:"

// CartRepository stores whole carts as JSON blobs keyed by user id, with a
// rolling TTL refreshed on every save.
type CartRepository struct {
	client *redis.Client
}

// NewCartRepository creates a Redis-backed cart repository.
func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{client: client}
}

func (r *CartRepository) cartKey(userID string) string {
	return cartKeyPrefix + userID
}

// GetByUserID loads the user's cart. A user without a stored cart gets a
// fresh empty one, not an error.
func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	val, err := r.client.Get(ctx, r.cartKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewCart(userID), nil
		}
		return nil, fmt.Errorf("failed to get cart for user %s from redis: %w", userID, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart data for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Save stores the cart and resets its expiry.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart, ttl time.Duration) error {
	if cart == nil || cart.UserID == "" {
		return errors.New("cannot save nil cart or cart with empty userID")
	}
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for user %s: %w", cart.UserID, err)
	}
	if err := r.client.Set(ctx, r.cartKey(cart.UserID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for user %s to redis: %w", cart.UserID, err)
	}
	return nil
}

// DeleteByUserID drops the user's stored cart.
func (r *CartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for user %s from redis: %w", userID, err)
	}
	return nil
}
