package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"go.uber.org/zap"
)

// FavoriteUsecase manages saved products and keeps the product's favorite
// counter in step.
type FavoriteUsecase struct {
	repo     domain.FavoriteRepository
	products domain.ProductRepository
	logger   *logger.Logger
}

// NewFavoriteUsecase creates a new FavoriteUsecase.
func NewFavoriteUsecase(repo domain.FavoriteRepository, products domain.ProductRepository, log *logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		repo:     repo,
		products: products,
		logger:   log.Named("FavoriteUsecase"),
	}
}

// Add saves a product for the user. Adding the same product twice returns
// domain.ErrAlreadyExists and leaves the counter untouched.
func (uc *FavoriteUsecase) Add(ctx context.Context, userID, productID string) error {
	uc.logger.Info("Adding favorite", zap.String("user_id", userID), zap.String("product_id", productID))

	if _, err := uc.products.FindByID(ctx, productID); err != nil {
		return err
	}
	favorite := &domain.Favorite{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Add(ctx, favorite); err != nil {
		if !errors.Is(err, domain.ErrAlreadyExists) {
			uc.logger.Error("Failed to add favorite", zap.Error(err))
		}
		return err
	}
	if err := uc.products.AdjustFavorites(ctx, productID, 1); err != nil {
		uc.logger.Warn("Failed to bump favorite counter", zap.String("product_id", productID), zap.Error(err))
	}
	return nil
}

// Remove unsaves a product for the user.
func (uc *FavoriteUsecase) Remove(ctx context.Context, userID, productID string) error {
	uc.logger.Info("Removing favorite", zap.String("user_id", userID), zap.String("product_id", productID))

	if err := uc.repo.Remove(ctx, userID, productID); err != nil {
		return err
	}
	if err := uc.products.AdjustFavorites(ctx, productID, -1); err != nil {
		uc.logger.Warn("Failed to lower favorite counter", zap.String("product_id", productID), zap.Error(err))
	}
	return nil
}

// List resolves the user's favorites to products. Products that vanished
// since being saved are skipped.
func (uc *FavoriteUsecase) List(ctx context.Context, userID string) ([]*domain.Product, error) {
	favorites, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list favorites", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	products := make([]*domain.Product, 0, len(favorites))
	for _, favorite := range favorites {
		product, err := uc.products.FindByID(ctx, favorite.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
