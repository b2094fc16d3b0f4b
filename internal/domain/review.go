package domain

import (
	"errors"
	"time"
)

// Review is a buyer's one-shot rating of a product and its seller. Reviews are
// created once per submission; there is no update or delete path.
type Review struct {
	ID         string
	ProductID  string
	ReviewerID string
	SellerID   string
	Rating     int32
	Comment    string
	CreatedAt  time.Time
}

// NewReview validates and builds a review. The reviewer must not be the
// seller being reviewed.
func NewReview(productID, reviewerID, sellerID string, rating int32, comment string) (*Review, error) {
	if productID == "" {
		return nil, errors.New("productID cannot be empty")
	}
	if reviewerID == "" {
		return nil, errors.New("reviewerID cannot be empty")
	}
	if sellerID == "" {
		return nil, errors.New("sellerID cannot be empty")
	}
	if reviewerID == sellerID {
		return nil, ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	return &Review{
		ProductID:  productID,
		ReviewerID: reviewerID,
		SellerID:   sellerID,
		Rating:     rating,
		Comment:    comment,
	}, nil
}
