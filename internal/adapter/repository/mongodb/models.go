package mongodb

import (
	"fmt"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productDocument is the MongoDB shape of a domain.Product.
type productDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	Description  string               `bson:"description"`
	Price        float64              `bson:"price"`
	Category     string               `bson:"category"`
	Condition    domain.Condition     `bson:"condition"`
	Images       []string             `bson:"images"`
	SellerID     string               `bson:"seller_id"`
	UniversityID string               `bson:"university_id"`
	Status       domain.ProductStatus `bson:"status"`
	Views        int64                `bson:"views"`
	Favorites    int64                `bson:"favorites"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ProductID  string             `bson:"product_id"`
	ReviewerID string             `bson:"reviewer_id"`
	SellerID   string             `bson:"seller_id"`
	Rating     int32              `bson:"rating"`
	Comment    string             `bson:"comment"`
	CreatedAt  time.Time          `bson:"created_at"`
}

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	FullName       string             `bson:"full_name"`
	PasswordHash   string             `bson:"password_hash"`
	UniversityID   string             `bson:"university_id"`
	UniversityName string             `bson:"university_name"`
	ProfileImage   string             `bson:"profile_image,omitempty"`
	Rating         float64            `bson:"rating"`
	TotalReviews   int32              `bson:"total_reviews"`
	IsActive       bool               `bson:"is_active"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ProductID string             `bson:"product_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

// objectIDFromDomain maps a domain string id to an ObjectID. An empty id maps
// to the nil ObjectID so InsertOne generates one.
func objectIDFromDomain(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id format '%s': %w", id, err)
	}
	return oid, nil
}

func fromDomainProduct(p *domain.Product) (*productDocument, error) {
	oid, err := objectIDFromDomain(p.ID)
	if err != nil {
		return nil, err
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &productDocument{
		ID:           oid,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Category:     p.Category,
		Condition:    p.Condition,
		Images:       images,
		SellerID:     p.SellerID,
		UniversityID: p.UniversityID,
		Status:       p.Status,
		Views:        p.Views,
		Favorites:    p.Favorites,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func (d *productDocument) toDomain() *domain.Product {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Product{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Category:     d.Category,
		Condition:    d.Condition,
		Images:       images,
		SellerID:     d.SellerID,
		UniversityID: d.UniversityID,
		Status:       d.Status,
		Views:        d.Views,
		Favorites:    d.Favorites,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func fromDomainReview(r *domain.Review) (*reviewDocument, error) {
	oid, err := objectIDFromDomain(r.ID)
	if err != nil {
		return nil, err
	}
	return &reviewDocument{
		ID:         oid,
		ProductID:  r.ProductID,
		ReviewerID: r.ReviewerID,
		SellerID:   r.SellerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func (d *reviewDocument) toDomain() *domain.Review {
	return &domain.Review{
		ID:         d.ID.Hex(),
		ProductID:  d.ProductID,
		ReviewerID: d.ReviewerID,
		SellerID:   d.SellerID,
		Rating:     d.Rating,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
	}
}

func fromDomainUser(u *domain.User) (*userDocument, error) {
	oid, err := objectIDFromDomain(u.ID)
	if err != nil {
		return nil, err
	}
	return &userDocument{
		ID:             oid,
		Email:          u.Email,
		FullName:       u.FullName,
		PasswordHash:   u.PasswordHash,
		UniversityID:   u.UniversityID,
		UniversityName: u.UniversityName,
		ProfileImage:   u.ProfileImage,
		Rating:         u.Rating,
		TotalReviews:   u.TotalReviews,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}, nil
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		FullName:       d.FullName,
		PasswordHash:   d.PasswordHash,
		UniversityID:   d.UniversityID,
		UniversityName: d.UniversityName,
		ProfileImage:   d.ProfileImage,
		Rating:         d.Rating,
		TotalReviews:   d.TotalReviews,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (d *favoriteDocument) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		ProductID: d.ProductID,
		CreatedAt: d.CreatedAt,
	}
}
