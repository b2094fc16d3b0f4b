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

const favoriteCollectionName = "favorites"

// FavoriteRepository implements domain.FavoriteRepository on MongoDB.
type FavoriteRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewFavoriteRepository creates the repository and ensures the unique
// (user_id, product_id) index.
func NewFavoriteRepository(db *mongo.Database, log *logger.Logger) (*FavoriteRepository, error) {
	collection := db.Collection(favoriteCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for favorites collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for favorites collection")
	}

	return &FavoriteRepository{
		collection: collection,
		logger:     log.Named("FavoriteRepository"),
	}, nil
}

// Add saves the favorite. Saving the same product twice for one user is
// domain.ErrAlreadyExists.
func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	doc := &favoriteDocument{
		ID:        primitive.NewObjectID(),
		UserID:    favorite.UserID,
		ProductID: favorite.ProductID,
		CreatedAt: favorite.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert favorite into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	favorite.ID = doc.ID.Hex()
	favorite.CreatedAt = doc.CreatedAt
	return nil
}

// Remove deletes the favorite. A missing row is domain.ErrNotFound.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, productID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "product_id": productID})
	if err != nil {
		r.logger.Error("Failed to delete favorite from DB", zap.Error(err))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByUserID returns the user's favorites, newest first.
func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		r.logger.Error("Failed to find favorites by user_id", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*favoriteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	favorites := make([]*domain.Favorite, len(docs))
	for i, doc := range docs {
		favorites[i] = doc.toDomain()
	}
	return favorites, nil
}
