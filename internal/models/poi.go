package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/poi"
)

// POI is a stored point of interest near a property, synced from the maps
// provider and re-scored locally.
type POI struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PropertyID primitive.ObjectID `json:"property_id" bson:"property_id"`
	PlaceID    string             `json:"place_id" bson:"place_id"`
	Name       string             `json:"name" bson:"name" validate:"required"`
	Category   poi.Category       `json:"category" bson:"category" validate:"required"`
	Latitude   float64            `json:"latitude" bson:"latitude"`
	Longitude  float64            `json:"longitude" bson:"longitude"`
	DistanceKM float64            `json:"distance_km" bson:"distance_km"`
	Address    string             `json:"address" bson:"address"`
	Source     string             `json:"source" bson:"source"` // google, manual
	SyncedAt   time.Time          `json:"synced_at" bson:"synced_at"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

func (p *POI) Place() poi.Place {
	return poi.Place{
		Name:       p.Name,
		Category:   p.Category,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		DistanceKM: p.DistanceKM,
	}
}
