//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	platformLogger "github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var testDB *mongo.Database

// TestMain starts a throwaway MongoDB container for the package.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "5.0",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}

	mongoURI := fmt.Sprintf("mongodb://%s/unimarket_test", resource.GetHostPort("27017/tcp"))

	var client *mongo.Client
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			return err
		}
		return client.Ping(ctx, nil)
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB container: %s", err)
	}

	testDB = client.Database("unimarket_test")

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func seedProduct(t *testing.T, repo *ProductRepository, title, category string, price float64, status domain.ProductStatus) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct("seller-1", "uni-1", title, "", category, price, domain.ConditionGood, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), product))
	if status != domain.ProductStatusActive {
		product.Status = status
		require.NoError(t, repo.Update(context.Background(), product))
	}
	return product
}

func TestProductRepository_FindByFilter(t *testing.T) {
	require.NoError(t, testDB.Collection(productCollectionName).Drop(context.Background()))
	repo, err := NewProductRepository(testDB, platformLogger.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	cheapBook := seedProduct(t, repo, "Calculus Textbook", "books", 20, domain.ProductStatusActive)
	seedProduct(t, repo, "Linear Algebra Textbook", "books", 80, domain.ProductStatusActive)
	phone := seedProduct(t, repo, "iPhone 12", "electronics", 350, domain.ProductStatusActive)
	seedProduct(t, repo, "Sold Lamp", "furniture", 10, domain.ProductStatusSold)

	t.Run("only active products appear", func(t *testing.T) {
		products, err := repo.FindByFilter(ctx, domain.Filter{})
		require.NoError(t, err)
		assert.Len(t, products, 3)
		for _, p := range products {
			assert.Equal(t, domain.ProductStatusActive, p.Status)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		category := "books"
		products, err := repo.FindByFilter(ctx, domain.Filter{Category: &category})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("price range", func(t *testing.T) {
		min, max := 15.0, 100.0
		products, err := repo.FindByFilter(ctx, domain.Filter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.GreaterOrEqual(t, p.Price, min)
			assert.LessOrEqual(t, p.Price, max)
		}
	})

	t.Run("sort by price ascending", func(t *testing.T) {
		products, err := repo.FindByFilter(ctx, domain.Filter{SortBy: domain.SortPriceLow})
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, cheapBook.ID, products[0].ID)
		assert.Equal(t, phone.ID, products[2].ID)
	})

	t.Run("sort defaults to newest first", func(t *testing.T) {
		products, err := repo.FindByFilter(ctx, domain.Filter{SortBy: domain.SortKey("bogus")})
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.False(t, products[0].CreatedAt.Before(products[1].CreatedAt))
	})
}

func TestProductRepository_IncrementViews(t *testing.T) {
	require.NoError(t, testDB.Collection(productCollectionName).Drop(context.Background()))
	repo, err := NewProductRepository(testDB, platformLogger.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	product := seedProduct(t, repo, "Desk", "furniture", 40, domain.ProductStatusActive)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViews(ctx, product.ID))
	}

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Views)

	assert.ErrorIs(t, repo.IncrementViews(ctx, "000000000000000000000000"), domain.ErrNotFound)
}

func TestReviewRepository_UniquePerReviewer(t *testing.T) {
	require.NoError(t, testDB.Collection(reviewCollectionName).Drop(context.Background()))
	repo, err := NewReviewRepository(testDB, platformLogger.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := domain.NewReview("product-1", "buyer-1", "seller-1", 5, "Great")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	dup, err := domain.NewReview("product-1", "buyer-1", "seller-1", 3, "Changed my mind")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrAlreadyExists)

	second, err := domain.NewReview("product-1", "buyer-2", "seller-1", 3, "Okay")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))

	reviews, err := repo.FindByProductID(ctx, "product-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, second.ID, reviews[0].ID, "newest review comes first")

	average, count, err := repo.AverageRatingBySeller(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), count)
	assert.InDelta(t, 4.0, average, 0.001)

	average, count, err = repo.AverageRatingBySeller(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, average)
}
