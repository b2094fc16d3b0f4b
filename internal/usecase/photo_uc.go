package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage uploads photo data and returns a publicly reachable URL.
type Storage interface {
	Upload(ctx context.Context, objectName string, data io.Reader, size int64, contentType string) (string, error)
}

// ErrStorageUnavailable is returned when no photo storage is configured.
var ErrStorageUnavailable = errors.New("photo storage is not configured")

// DisabledStorage rejects all uploads. Used when the service runs without an
// object store.
type DisabledStorage struct{}

func (DisabledStorage) Upload(ctx context.Context, objectName string, data io.Reader, size int64, contentType string) (string, error) {
	return "", ErrStorageUnavailable
}

// PhotoUsecase attaches uploaded photos to a seller's own products.
type PhotoUsecase struct {
	products domain.ProductRepository
	storage  Storage
	logger   *logger.Logger
}

// NewPhotoUsecase creates a new PhotoUsecase.
func NewPhotoUsecase(products domain.ProductRepository, storage Storage, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{
		products: products,
		storage:  storage,
		logger:   log.Named("PhotoUsecase"),
	}
}

// AddPhoto uploads a photo for the product and appends its URL to the
// product's image list. Only the seller may add photos.
func (uc *PhotoUsecase) AddPhoto(ctx context.Context, userID, productID, fileName string, data io.Reader, size int64, contentType string) (string, error) {
	product, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if product.SellerID != userID {
		return "", domain.ErrForbidden
	}

	objectName := fmt.Sprintf("%s/%s%s", productID, uuid.New().String(), filepath.Ext(fileName))
	url, err := uc.storage.Upload(ctx, objectName, data, size, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload photo", zap.String("product_id", productID), zap.Error(err))
		return "", fmt.Errorf("upload photo: %w", err)
	}

	product.Images = append(product.Images, url)
	if err := uc.products.Update(ctx, product); err != nil {
		uc.logger.Error("Failed to attach photo to product", zap.String("product_id", productID), zap.Error(err))
		return "", err
	}

	uc.logger.Info("Photo added", zap.String("product_id", productID), zap.String("url", url))
	return url, nil
}
