package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFavoriteUsecase_Add(t *testing.T) {
	repo := new(MockFavoriteRepository)
	products := new(MockProductRepository)
	uc := NewFavoriteUsecase(repo, products, logger.NewNop())

	product := activeProduct("product-1", "seller-1", 10.0)
	products.On("FindByID", mock.Anything, "product-1").Return(product, nil).Once()
	repo.On("Add", mock.Anything, mock.MatchedBy(func(f *domain.Favorite) bool {
		return f.UserID == "user-1" && f.ProductID == "product-1"
	})).Return(nil).Once()
	products.On("AdjustFavorites", mock.Anything, "product-1", 1).Return(nil).Once()

	assert.NoError(t, uc.Add(context.Background(), "user-1", "product-1"))
	repo.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestFavoriteUsecase_Add_DuplicateDoesNotBumpCounter(t *testing.T) {
	repo := new(MockFavoriteRepository)
	products := new(MockProductRepository)
	uc := NewFavoriteUsecase(repo, products, logger.NewNop())

	product := activeProduct("product-1", "seller-1", 10.0)
	products.On("FindByID", mock.Anything, "product-1").Return(product, nil).Once()
	repo.On("Add", mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists).Once()

	err := uc.Add(context.Background(), "user-1", "product-1")

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	products.AssertNotCalled(t, "AdjustFavorites", mock.Anything, mock.Anything, mock.Anything)
}

func TestFavoriteUsecase_Remove(t *testing.T) {
	repo := new(MockFavoriteRepository)
	products := new(MockProductRepository)
	uc := NewFavoriteUsecase(repo, products, logger.NewNop())

	repo.On("Remove", mock.Anything, "user-1", "product-1").Return(nil).Once()
	products.On("AdjustFavorites", mock.Anything, "product-1", -1).Return(nil).Once()

	assert.NoError(t, uc.Remove(context.Background(), "user-1", "product-1"))
	repo.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestFavoriteUsecase_List_SkipsVanishedProducts(t *testing.T) {
	repo := new(MockFavoriteRepository)
	products := new(MockProductRepository)
	uc := NewFavoriteUsecase(repo, products, logger.NewNop())

	repo.On("FindByUserID", mock.Anything, "user-1").Return([]*domain.Favorite{
		{UserID: "user-1", ProductID: "product-1"},
		{UserID: "user-1", ProductID: "deleted"},
	}, nil).Once()
	products.On("FindByID", mock.Anything, "product-1").Return(activeProduct("product-1", "seller-1", 10.0), nil).Once()
	products.On("FindByID", mock.Anything, "deleted").Return(nil, domain.ErrNotFound).Once()

	list, err := uc.List(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "product-1", list[0].ID)
}

func TestPhotoUsecase_AddPhoto(t *testing.T) {
	products := new(MockProductRepository)
	storage := new(MockStorage)
	uc := NewPhotoUsecase(products, storage, logger.NewNop())

	product := activeProduct("product-1", "seller-1", 10.0)
	data := strings.NewReader("jpeg-bytes")

	products.On("FindByID", mock.Anything, "product-1").Return(product, nil).Once()
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "product-1/") && strings.HasSuffix(name, ".jpg")
	}), data, int64(10), "image/jpeg").Return("https://cdn.example.com/product-1/photo.jpg", nil).Once()
	products.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return len(p.Images) == 1 && p.Images[0] == "https://cdn.example.com/product-1/photo.jpg"
	})).Return(nil).Once()

	url, err := uc.AddPhoto(context.Background(), "seller-1", "product-1", "photo.jpg", data, 10, "image/jpeg")

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/product-1/photo.jpg", url)
	products.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestPhotoUsecase_AddPhoto_NotOwner(t *testing.T) {
	products := new(MockProductRepository)
	storage := new(MockStorage)
	uc := NewPhotoUsecase(products, storage, logger.NewNop())

	product := activeProduct("product-1", "seller-1", 10.0)
	products.On("FindByID", mock.Anything, "product-1").Return(product, nil).Once()

	_, err := uc.AddPhoto(context.Background(), "intruder", "product-1", "photo.jpg", strings.NewReader(""), 0, "image/jpeg")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
