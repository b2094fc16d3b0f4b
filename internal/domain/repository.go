package domain

import (
	"context"
	"time"
)

// ProductRepository persists product listings. Methods operate on the clean
// domain entity; database-specific mapping lives in the implementation.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByFilter returns active products matching every set constraint,
	// ordered by the filter's sort key.
	FindByFilter(ctx context.Context, filter Filter) ([]*Product, error)

	// IncrementViews bumps the view counter without a read-modify-write cycle.
	IncrementViews(ctx context.Context, id string) error

	// AdjustFavorites moves the favorite counter by delta (positive or negative).
	AdjustFavorites(ctx context.Context, id string, delta int) error
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error

	// FindByProductID returns the product's reviews, newest first.
	FindByProductID(ctx context.Context, productID string) ([]*Review, error)

	// AverageRatingBySeller aggregates the seller's rating across all their
	// reviews. Returns (0, 0, nil) when the seller has none.
	AverageRatingBySeller(ctx context.Context, sellerID string) (average float64, count int32, err error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateRating stores the denormalized seller rating aggregate.
	UpdateRating(ctx context.Context, userID string, rating float64, totalReviews int32) error
}

// Favorite marks a product as saved by a user, unique per (user, product).
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	CreatedAt time.Time
}

// FavoriteRepository persists favorites.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, userID, productID string) error
	FindByUserID(ctx context.Context, userID string) ([]*Favorite, error)
}

// CartRepository stores whole carts keyed by user id. A missing cart reads
// back as a fresh empty one.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart, ttl time.Duration) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// ProductCache is a short-lived product-detail cache consulted before the
// repository when refreshing cart snapshots.
type ProductCache interface {
	Get(ctx context.Context, productID string) (*Product, error)
	Set(ctx context.Context, product *Product, ttl time.Duration) error
	Delete(ctx context.Context, productID string) error
}
