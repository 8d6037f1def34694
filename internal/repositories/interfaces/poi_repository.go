package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
)

type POIRepository interface {
	Upsert(ctx context.Context, poi *models.POI) error
	GetByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]*models.POI, error)
	DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error
	DeleteBySource(ctx context.Context, propertyID primitive.ObjectID, source string) error
}
