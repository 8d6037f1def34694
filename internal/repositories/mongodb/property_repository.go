package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"psmestate/internal/models"
	"psmestate/internal/poi"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/pkg/cache"
)

type propertyRepository struct {
	collection *mongo.Collection
	cache      *cache.RedisCache
}

func NewPropertyRepository(db *mongo.Database, redis *cache.RedisCache) interfaces.PropertyRepository {
	return &propertyRepository{
		collection: db.Collection("properties"),
		cache:      redis,
	}
}

func propertySlugKey(slug string) string {
	return utils.CachePropertyPrefix + "slug:" + slug
}

// currentSlug reads just the slug of a property, for cache invalidation
// around writes. Returns "" when caching is off or the document is gone.
func (r *propertyRepository) currentSlug(ctx context.Context, id primitive.ObjectID) string {
	if r.cache == nil {
		return ""
	}

	var doc struct {
		Slug string `bson:"slug"`
	}
	opts := options.FindOne().SetProjection(bson.M{"slug": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		return ""
	}
	return doc.Slug
}

func (r *propertyRepository) dropSlugCache(ctx context.Context, slug string) {
	if r.cache == nil || slug == "" {
		return
	}
	_ = r.cache.Delete(ctx, propertySlugKey(slug))
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	property.ID = primitive.NewObjectID()
	property.CreatedAt = time.Now()
	property.UpdatedAt = property.CreatedAt

	if property.Status == "" {
		property.Status = models.PropertyStatusDraft
	}

	_, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("property not found")
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &property, nil
}

func (r *propertyRepository) GetBySlug(ctx context.Context, slug string) (*models.Property, error) {
	// Slug lookups back the public listing pages, so they read through the
	// cache. Writes invalidate the entry; view counts are allowed to lag
	// until the TTL.
	if r.cache != nil {
		var cached models.Property
		if err := r.cache.Get(ctx, propertySlugKey(slug), &cached); err == nil {
			return &cached, nil
		}
	}

	var property models.Property
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"slug": slug})).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("property not found")
		}
		return nil, fmt.Errorf("failed to get property by slug: %w", err)
	}

	if r.cache != nil && property.IsPublished() {
		_ = r.cache.Set(ctx, propertySlugKey(property.Slug), &property, utils.CacheSlugTTL)
	}

	return &property, nil
}

func (r *propertyRepository) GetByReference(ctx context.Context, reference string) (*models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"reference": reference})).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("property not found")
		}
		return nil, fmt.Errorf("failed to get property by reference: %w", err)
	}

	return &property, nil
}

func (r *propertyRepository) GetBySourceURL(ctx context.Context, sourceURL string) (*models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"source_url": sourceURL})).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("property not found")
		}
		return nil, fmt.Errorf("failed to get property by source URL: %w", err)
	}

	return &property, nil
}

func (r *propertyRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	// Capture the slug before the write in case the update renames it.
	oldSlug := r.currentSlug(ctx, id)

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	r.dropSlugCache(ctx, oldSlug)
	if slug, ok := updates["slug"].(string); ok {
		r.dropSlugCache(ctx, slug)
	}

	return nil
}

func (r *propertyRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	slug := r.currentSlug(ctx, id)

	now := time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	r.dropSlugCache(ctx, slug)

	return nil
}

func (r *propertyRepository) Search(ctx context.Context, filter *models.PropertySearchFilter, params *utils.PaginationParams) ([]*models.Property, int64, error) {
	query := notDeleted(bson.M{"status": models.PropertyStatusPublished})

	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.Area != "" {
		query["area"] = filter.Area
	}
	if filter.ListingType != "" {
		query["listing_type"] = filter.ListingType
	}
	if filter.PropertyType != "" {
		query["property_type"] = filter.PropertyType
	}
	if filter.MinBedrooms > 0 {
		query["bedrooms"] = bson.M{"$gte": filter.MinBedrooms}
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	priceField := "monthly_price"
	if filter.ListingType == models.ListingTypeSale {
		priceField = "sale_price"
	}
	priceRange := bson.M{}
	if filter.MinPrice > 0 {
		priceRange["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		priceRange["$lte"] = filter.MaxPrice
	}
	if len(priceRange) > 0 {
		query[priceField] = priceRange
	}

	if search := params.GetSearchFilter([]string{"title", "description", "area"}); len(search) > 0 {
		query = bson.M{"$and": []bson.M{query, search}}
	}

	return r.findPage(ctx, query, params)
}

func (r *propertyRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Property, int64, error) {
	query := notDeleted(bson.M{})

	if search := params.GetSearchFilter([]string{"title", "reference", "city"}); len(search) > 0 {
		query = bson.M{"$and": []bson.M{query, search}}
	}

	return r.findPage(ctx, query, params)
}

func (r *propertyRepository) GetFeatured(ctx context.Context, limit int) ([]*models.Property, error) {
	query := notDeleted(bson.M{
		"status":   models.PropertyStatusPublished,
		"featured": true,
	})

	params := &utils.PaginationParams{Page: 1, PageSize: limit, Sort: "published_at", Order: "desc"}
	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to get featured properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

func (r *propertyRepository) GetPublishedWithCoordinates(ctx context.Context) ([]*models.Property, error) {
	query := notDeleted(bson.M{
		"status":    models.PropertyStatusPublished,
		"latitude":  bson.M{"$ne": 0},
		"longitude": bson.M{"$ne": 0},
	})

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get properties with coordinates: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

func (r *propertyRepository) IncrementViewCount(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"view_count": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

func (r *propertyRepository) UpdatePOIScores(ctx context.Context, id primitive.ObjectID, scores *poi.Scores) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"poi_scores":    scores,
			"poi_scored_at": now,
			"updated_at":    now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update POI scores: %w", err)
	}

	r.dropSlugCache(ctx, r.currentSlug(ctx, id))

	return nil
}

func (r *propertyRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"deleted_at": bson.M{"$exists": false}}},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		counts[row.ID] = row.Count
	}

	return counts, nil
}

func (r *propertyRepository) findPage(ctx context.Context, query bson.M, params *utils.PaginationParams) ([]*models.Property, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, total, nil
}

// notDeleted adds the soft-delete guard to a filter.
func notDeleted(query bson.M) bson.M {
	query["deleted_at"] = bson.M{"$exists": false}
	return query
}
