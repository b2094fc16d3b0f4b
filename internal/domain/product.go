package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// ProductStatus represents the lifecycle state of a listing.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusSold     ProductStatus = "sold"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the ProductStatus is one of the defined constants.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusSold, ProductStatusInactive:
		return true
	}
	return false
}

// Condition is the quality grade a seller assigns to an item.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// IsValid checks if the Condition is one of the defined constants.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Product is a marketplace listing owned by its seller.
type Product struct {
	ID           string
	Title        string
	Description  string
	Price        float64
	Category     string
	Condition    Condition
	Images       []string
	SellerID     string
	UniversityID string
	Status       ProductStatus
	Views        int64
	Favorites    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct builds an active product listing. The ID, counters and
// timestamps are assigned by the repository on insert.
func NewProduct(sellerID, universityID, title, description, category string, price float64, condition Condition, images []string) (*Product, error) {
	if sellerID == "" {
		return nil, errors.New("sellerID cannot be empty")
	}
	if title == "" {
		return nil, errors.New("title cannot be empty")
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, errors.New("price must be a non-negative number")
	}
	if !condition.IsValid() {
		return nil, errors.New("unknown condition value")
	}
	if images == nil {
		images = []string{}
	}
	return &Product{
		Title:        title,
		Description:  description,
		Price:        price,
		Category:     category,
		Condition:    condition,
		Images:       images,
		SellerID:     sellerID,
		UniversityID: universityID,
		Status:       ProductStatusActive,
	}, nil
}

// MatchesText reports whether the query is a case-insensitive substring of the
// product's title, description or category. An empty query matches everything.
// This is the second, in-memory filtering pass; free-text search is never part
// of the repository query.
func (p *Product) MatchesText(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
