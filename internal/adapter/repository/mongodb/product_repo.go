package mongodb

import (
	"context"
	"errors"
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

const productCollectionName = "products"

// ProductRepository implements domain.ProductRepository on MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewProductRepository creates the repository and ensures its indexes.
func NewProductRepository(db *mongo.Database, log *logger.Logger) (*ProductRepository, error) {
	collection := db.Collection(productCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "university_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for products collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for products collection")
	}

	return &ProductRepository{
		collection: collection,
		logger:     log.Named("ProductRepository"),
	}, nil
}

// Create inserts a new product and writes the generated id and timestamps
// back into the domain entity.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.logger.Info("Creating product in DB", zap.String("seller_id", product.SellerID), zap.String("title", product.Title))

	doc, err := fromDomainProduct(product)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert product into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	product.ID = doc.ID.Hex()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.logger.Info("Product created in DB", zap.String("product_id", product.ID))
	return nil
}

// Update replaces the mutable product fields.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	doc, err := fromDomainProduct(product)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return errors.New("cannot update product without ID")
	}
	doc.UpdatedAt = time.Now().UTC()
	product.UpdatedAt = doc.UpdatedAt

	update := bson.M{"$set": bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"price":       doc.Price,
		"category":    doc.Category,
		"condition":   doc.Condition,
		"images":      doc.Images,
		"status":      doc.Status,
		"updated_at":  doc.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		r.logger.Error("Failed to update product in DB", zap.Error(err), zap.String("product_id", product.ID))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByID retrieves a product by its hex id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get product by ID from DB", zap.Error(err), zap.String("product_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByFilter returns active products matching every set constraint, in the
// filter's sort order. Only active listings are ever part of the catalog
// query; sold and inactive products are excluded at the database.
func (r *ProductRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	query := bson.M{"status": domain.ProductStatusActive}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.University != nil {
		query["university_id"] = *filter.University
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}
	if len(filter.Conditions) > 0 {
		query["condition"] = bson.M{"$in": filter.Conditions}
	}

	findOptions := options.Find().SetSort(sortOrder(filter.SortBy))

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to find products by filter", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode products", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.toDomain()
	}
	return products, nil
}

// sortOrder maps a sort key to a Mongo sort document. Rating and unknown keys
// fall back to newest first; per-product rating is not a stored field.
func sortOrder(key domain.SortKey) bson.D {
	switch key {
	case domain.SortOldest:
		return bson.D{{Key: "created_at", Value: 1}}
	case domain.SortPriceLow:
		return bson.D{{Key: "price", Value: 1}, {Key: "created_at", Value: -1}}
	case domain.SortPriceHigh:
		return bson.D{{Key: "price", Value: -1}, {Key: "created_at", Value: -1}}
	case domain.SortViews:
		return bson.D{{Key: "views", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// IncrementViews bumps the view counter atomically. Concurrent reads of the
// same product never lose increments.
func (r *ProductRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustFavorites moves the favorite counter by delta.
func (r *ProductRepository) AdjustFavorites(ctx context.Context, id string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"favorites": delta}})
	if err != nil {
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
