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

// ProductUsecase implements the catalog operations: filtered listing, free-text
// search over fetched results, single-product reads and listing creation.
type ProductUsecase struct {
	repo   domain.ProductRepository
	events Publisher
	mailer Mailer
	users  domain.UserRepository
	logger *logger.Logger
}

// NewProductUsecase creates a new ProductUsecase.
func NewProductUsecase(repo domain.ProductRepository, users domain.UserRepository, events Publisher, mailer Mailer, log *logger.Logger) *ProductUsecase {
	return &ProductUsecase{
		repo:   repo,
		users:  users,
		events: events,
		mailer: mailer,
		logger: log.Named("ProductUsecase"),
	}
}

// CreateProductInput holds the caller-supplied listing fields. The server
// assigns id, timestamps and counters.
type CreateProductInput struct {
	SellerID     string
	UniversityID string
	Title        string
	Description  string
	Price        float64
	Category     string
	Condition    domain.Condition
	Images       []string
}

// List returns active products matching the filter, in the filter's sort order.
func (uc *ProductUsecase) List(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	products, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return products, nil
}

// Search runs the server-side filter, then keeps only products whose title,
// description or category contains the query, case-insensitively. The text
// query is a second pass over the fetched list and is never sent to the
// repository.
func (uc *ProductUsecase) Search(ctx context.Context, filter domain.Filter, query string) ([]*domain.Product, error) {
	products, err := uc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}
	matched := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if p.MatchesText(query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Get returns a single product and bumps its view counter. A missing product
// is reported as domain.ErrNotFound so callers can render it as a distinct
// state rather than an error banner. The counter bump is best-effort.
func (uc *ProductUsecase) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		uc.logger.Error("Failed to get product", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	if err := uc.repo.IncrementViews(ctx, id); err != nil {
		uc.logger.Warn("Failed to increment view counter", zap.String("product_id", id), zap.Error(err))
	}
	return product, nil
}

// Create validates and inserts a new listing, then publishes product.created.
// Negative or non-finite prices are rejected at this boundary instead of
// assuming server-side validation exists.
func (uc *ProductUsecase) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	uc.logger.Info("Creating product",
		zap.String("seller_id", input.SellerID),
		zap.String("title", input.Title),
		zap.String("category", input.Category))

	product, err := domain.NewProduct(input.SellerID, input.UniversityID, input.Title, input.Description,
		input.Category, input.Price, input.Condition, input.Images)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		uc.logger.Error("Failed to save product", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to create product: %v", domain.ErrRepository, err)
	}

	eventData := map[string]interface{}{
		"product_id": product.ID,
		"seller_id":  product.SellerID,
		"category":   product.Category,
		"price":      product.Price,
		"created_at": product.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := uc.events.Publish(ctx, SubjectProductCreated, eventData); err != nil {
		uc.logger.Warn("Failed to publish product.created event", zap.Error(err), zap.String("product_id", product.ID))
	}

	uc.logger.Info("Product created successfully", zap.String("product_id", product.ID))
	return product, nil
}

// UpdateStatus transitions a listing between active, sold and inactive. Only
// the owner may do this. Marking a product sold notifies the seller by email.
func (uc *ProductUsecase) UpdateStatus(ctx context.Context, id, userID string, status domain.ProductStatus) (*domain.Product, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status '%s'", domain.ErrInvalidInput, status)
	}

	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	if product.SellerID != userID {
		uc.logger.Warn("User forbidden to change product status",
			zap.String("product_id", id), zap.String("owner_id", product.SellerID), zap.String("user_id", userID))
		return nil, domain.ErrForbidden
	}
	if product.Status == status {
		return product, nil
	}

	product.Status = status
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		uc.logger.Error("Failed to update product status", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}

	if status == domain.ProductStatusSold {
		eventData := map[string]interface{}{
			"product_id": product.ID,
			"seller_id":  product.SellerID,
			"sold_at":    product.UpdatedAt.Format(time.RFC3339Nano),
		}
		if err := uc.events.Publish(ctx, SubjectProductSold, eventData); err != nil {
			uc.logger.Warn("Failed to publish product.sold event", zap.Error(err), zap.String("product_id", product.ID))
		}
		uc.notifySold(ctx, product)
	}

	uc.logger.Info("Product status updated", zap.String("product_id", id), zap.String("status", string(status)))
	return product, nil
}

func (uc *ProductUsecase) notifySold(ctx context.Context, product *domain.Product) {
	seller, err := uc.users.FindByID(ctx, product.SellerID)
	if err != nil {
		uc.logger.Warn("Could not look up seller for sold notification", zap.String("seller_id", product.SellerID), zap.Error(err))
		return
	}
	if err := uc.mailer.SendProductSold(seller.Email, product.Title); err != nil {
		uc.logger.Warn("Failed to send product-sold email", zap.String("seller_id", seller.ID), zap.Error(err))
	}
}
