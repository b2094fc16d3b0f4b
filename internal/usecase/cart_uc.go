package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"go.uber.org/zap"
)

const (
	defaultCartTTL         = 24 * time.Hour
	defaultProductCacheTTL = 5 * time.Minute
)

// CartUsecase owns the per-user cart for the lifetime of its storage scope.
type CartUsecase struct {
	cartRepo        domain.CartRepository
	productCache    domain.ProductCache
	products        domain.ProductRepository
	logger          *logger.Logger
	cartTTL         time.Duration
	productCacheTTL time.Duration
}

// CartUsecaseConfig tunes cart and product-cache expiry.
type CartUsecaseConfig struct {
	CartTTL         time.Duration
	ProductCacheTTL time.Duration
}

// NewCartUsecase creates a new CartUsecase.
func NewCartUsecase(
	cartRepo domain.CartRepository,
	productCache domain.ProductCache,
	products domain.ProductRepository,
	log *logger.Logger,
	cfg CartUsecaseConfig,
) *CartUsecase {
	cartTTL := cfg.CartTTL
	if cartTTL <= 0 {
		cartTTL = defaultCartTTL
	}
	productCacheTTL := cfg.ProductCacheTTL
	if productCacheTTL <= 0 {
		productCacheTTL = defaultProductCacheTTL
	}
	return &CartUsecase{
		cartRepo:        cartRepo,
		productCache:    productCache,
		products:        products,
		logger:          log.Named("CartUsecase"),
		cartTTL:         cartTTL,
		productCacheTTL: productCacheTTL,
	}
}

// fetchProduct consults the short-lived cache before the repository.
func (uc *CartUsecase) fetchProduct(ctx context.Context, productID string) (*domain.Product, error) {
	cached, err := uc.productCache.Get(ctx, productID)
	if err == nil && cached != nil {
		uc.logger.Debug("Product found in cache", zap.String("product_id", productID))
		return cached, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("Error reading product cache, falling back to repository", zap.String("product_id", productID), zap.Error(err))
	}

	product, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := uc.productCache.Set(ctx, product, uc.productCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache product", zap.String("product_id", productID), zap.Error(err))
	}
	return product, nil
}

// AddToCart adds one unit of the product to the user's cart. An existing line
// is incremented; otherwise a new line with quantity 1 is appended. Only
// active products can be added.
func (uc *CartUsecase) AddToCart(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	uc.logger.Info("Adding item to cart", zap.String("user_id", userID), zap.String("product_id", productID))

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load cart", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}

	product, err := uc.fetchProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		uc.logger.Error("Failed to fetch product for cart", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("could not fetch product %s: %w", productID, err)
	}
	if product.Status != domain.ProductStatusActive {
		uc.logger.Warn("Attempted to add inactive product to cart",
			zap.String("product_id", productID), zap.String("status", string(product.Status)))
		return nil, domain.ErrProductUnavailable
	}

	if err := cart.AddProduct(*product); err != nil {
		return nil, fmt.Errorf("could not add item to cart: %w", err)
	}
	if err := uc.cartRepo.Save(ctx, cart, uc.cartTTL); err != nil {
		uc.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity; non-positive values remove the line.
func (uc *CartUsecase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	uc.logger.Info("Updating cart quantity",
		zap.String("user_id", userID), zap.String("product_id", productID), zap.Int("quantity", quantity))

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	if err := cart.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.Save(ctx, cart, uc.cartTTL); err != nil {
		uc.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	return cart, nil
}

// RemoveFromCart deletes a line. Removing an absent product is a no-op.
func (uc *CartUsecase) RemoveFromCart(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	uc.logger.Info("Removing item from cart", zap.String("user_id", userID), zap.String("product_id", productID))

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	cart.RemoveProduct(productID)
	if err := uc.cartRepo.Save(ctx, cart, uc.cartTTL); err != nil {
		uc.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	return cart, nil
}

// GetCart reads the user's cart; a user who never had one gets an empty cart.
func (uc *CartUsecase) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load cart", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	return cart, nil
}

// ClearCart empties the user's cart.
func (uc *CartUsecase) ClearCart(ctx context.Context, userID string) error {
	uc.logger.Info("Clearing cart", zap.String("user_id", userID))
	if err := uc.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		uc.logger.Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("could not clear cart: %w", err)
	}
	return nil
}
