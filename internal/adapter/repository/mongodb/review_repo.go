package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const reviewCollectionName = "reviews"

// ReviewRepository implements domain.ReviewRepository on MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewReviewRepository creates the repository and ensures its indexes. The
// unique (product_id, reviewer_id) index makes a second review of the same
// product by the same user a duplicate key error.
func NewReviewRepository(db *mongo.Database, log *logger.Logger) (*ReviewRepository, error) {
	collection := db.Collection(reviewCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "reviewer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for reviews collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for reviews collection")
	}

	return &ReviewRepository{
		collection: collection,
		logger:     log.Named("ReviewRepository"),
	}, nil
}

// Create inserts a new review and writes the generated id and timestamp back
// into the domain entity.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	r.logger.Info("Creating review in DB",
		zap.String("product_id", review.ProductID), zap.String("reviewer_id", review.ReviewerID))

	doc, err := fromDomainReview(review)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate review", zap.String("product_id", review.ProductID), zap.String("reviewer_id", review.ReviewerID))
			return domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert review into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	review.ID = doc.ID.Hex()
	review.CreatedAt = doc.CreatedAt
	return nil
}

// FindByProductID retrieves a product's reviews, newest first.
func (r *ReviewRepository) FindByProductID(ctx context.Context, productID string) ([]*domain.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID}, findOptions)
	if err != nil {
		r.logger.Error("Failed to find reviews by product_id", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	reviews := make([]*domain.Review, len(docs))
	for i, doc := range docs {
		reviews[i] = doc.toDomain()
	}
	return reviews, nil
}

// AverageRatingBySeller aggregates the seller's rating across all their
// reviews. A seller with no reviews yields (0, 0, nil).
func (r *ReviewRepository) AverageRatingBySeller(ctx context.Context, sellerID string) (float64, int32, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "seller_id", Value: sellerID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$seller_id"},
			{Key: "average_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate seller rating", zap.Error(err), zap.String("seller_id", sellerID))
		return 0, 0, fmt.Errorf("db aggregate failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AverageRating float64 `bson:"average_rating"`
		Count         int32   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("db cursor all for aggregate failed: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].AverageRating, results[0].Count, nil
}
