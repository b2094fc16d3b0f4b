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

// ReviewUsecase implements the business logic for reviews.
type ReviewUsecase struct {
	repo     domain.ReviewRepository
	products domain.ProductRepository
	users    domain.UserRepository
	events   Publisher
	mailer   Mailer
	logger   *logger.Logger
}

// NewReviewUsecase creates a new ReviewUsecase.
func NewReviewUsecase(
	repo domain.ReviewRepository,
	products domain.ProductRepository,
	users domain.UserRepository,
	events Publisher,
	mailer Mailer,
	log *logger.Logger,
) *ReviewUsecase {
	return &ReviewUsecase{
		repo:     repo,
		products: products,
		users:    users,
		events:   events,
		mailer:   mailer,
		logger:   log.Named("ReviewUsecase"),
	}
}

// Create inserts a review for a product. The reviewer must not be the seller.
// On success the review.created event is published, the seller's denormalized
// rating aggregate is refreshed and the seller is emailed; all three are
// best-effort. On failure nothing changes.
func (uc *ReviewUsecase) Create(ctx context.Context, productID, reviewerID string, rating int32, comment string) (*domain.Review, error) {
	uc.logger.Info("Creating review",
		zap.String("product_id", productID),
		zap.String("reviewer_id", reviewerID),
		zap.Int32("rating", rating))

	if reviewerID == "" {
		return nil, fmt.Errorf("%w: reviewerID cannot be empty", domain.ErrInvalidInput)
	}

	product, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	if product.SellerID == reviewerID {
		uc.logger.Warn("Seller attempted to review own product",
			zap.String("product_id", productID), zap.String("reviewer_id", reviewerID))
		return nil, domain.ErrForbidden
	}

	review, err := domain.NewReview(productID, reviewerID, product.SellerID, rating, comment)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := uc.repo.Create(ctx, review); err != nil {
		uc.logger.Error("Failed to save review", zap.Error(err))
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to create review: %v", domain.ErrRepository, err)
	}

	uc.refreshSellerRating(ctx, product.SellerID)

	eventData := map[string]interface{}{
		"review_id":   review.ID,
		"product_id":  review.ProductID,
		"reviewer_id": review.ReviewerID,
		"seller_id":   review.SellerID,
		"rating":      review.Rating,
		"created_at":  review.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := uc.events.Publish(ctx, SubjectReviewCreated, eventData); err != nil {
		uc.logger.Warn("Failed to publish review.created event", zap.Error(err), zap.String("review_id", review.ID))
	}
	uc.notifySeller(ctx, product)

	uc.logger.Info("Review created successfully", zap.String("review_id", review.ID))
	return review, nil
}

// ListByProduct returns a product's reviews, newest first.
func (uc *ReviewUsecase) ListByProduct(ctx context.Context, productID string) ([]*domain.Review, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: productID cannot be empty", domain.ErrInvalidInput)
	}
	reviews, err := uc.repo.FindByProductID(ctx, productID)
	if err != nil {
		uc.logger.Error("Failed to list reviews", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	return reviews, nil
}

func (uc *ReviewUsecase) refreshSellerRating(ctx context.Context, sellerID string) {
	average, count, err := uc.repo.AverageRatingBySeller(ctx, sellerID)
	if err != nil {
		uc.logger.Warn("Failed to aggregate seller rating", zap.String("seller_id", sellerID), zap.Error(err))
		return
	}
	if err := uc.users.UpdateRating(ctx, sellerID, average, count); err != nil {
		uc.logger.Warn("Failed to store seller rating", zap.String("seller_id", sellerID), zap.Error(err))
	}
}

func (uc *ReviewUsecase) notifySeller(ctx context.Context, product *domain.Product) {
	seller, err := uc.users.FindByID(ctx, product.SellerID)
	if err != nil {
		uc.logger.Warn("Could not look up seller for review notification", zap.String("seller_id", product.SellerID), zap.Error(err))
		return
	}
	if err := uc.mailer.SendReviewReceived(seller.Email, product.Title); err != nil {
		uc.logger.Warn("Failed to send review-received email", zap.String("seller_id", seller.ID), zap.Error(err))
	}
}
