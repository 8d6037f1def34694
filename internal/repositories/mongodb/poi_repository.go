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
	"psmestate/internal/repositories/interfaces"
)

type poiRepository struct {
	collection *mongo.Collection
}

func NewPOIRepository(db *mongo.Database) interfaces.POIRepository {
	return &poiRepository{
		collection: db.Collection("pois"),
	}
}

// Upsert keys on (property_id, place_id) so repeated syncs refresh rather
// than duplicate.
func (r *poiRepository) Upsert(ctx context.Context, poi *models.POI) error {
	now := time.Now()
	poi.UpdatedAt = now
	if poi.SyncedAt.IsZero() {
		poi.SyncedAt = now
	}

	filter := bson.M{
		"property_id": poi.PropertyID,
		"place_id":    poi.PlaceID,
	}
	update := bson.M{
		"$set": bson.M{
			"name":        poi.Name,
			"category":    poi.Category,
			"latitude":    poi.Latitude,
			"longitude":   poi.Longitude,
			"distance_km": poi.DistanceKM,
			"address":     poi.Address,
			"source":      poi.Source,
			"synced_at":   poi.SyncedAt,
			"updated_at":  poi.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert POI: %w", err)
	}

	return nil
}

func (r *poiRepository) GetByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]*models.POI, error) {
	opts := options.Find().SetSort(bson.D{{Key: "distance_km", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"property_id": propertyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get POIs: %w", err)
	}
	defer cursor.Close(ctx)

	var pois []*models.POI
	if err := cursor.All(ctx, &pois); err != nil {
		return nil, fmt.Errorf("failed to decode POIs: %w", err)
	}

	return pois, nil
}

func (r *poiRepository) DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"property_id": propertyID})
	if err != nil {
		return fmt.Errorf("failed to delete POIs: %w", err)
	}

	return nil
}

func (r *poiRepository) DeleteBySource(ctx context.Context, propertyID primitive.ObjectID, source string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"property_id": propertyID, "source": source})
	if err != nil {
		return fmt.Errorf("failed to delete POIs by source: %w", err)
	}

	return nil
}
