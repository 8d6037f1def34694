package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/poi"
)

type PropertyStatus string
type ListingType string
type PropertyType string

const (
	PropertyStatusDraft     PropertyStatus = "draft"
	PropertyStatusPublished PropertyStatus = "published"
	PropertyStatusArchived  PropertyStatus = "archived"

	ListingTypeRent ListingType = "rent"
	ListingTypeSale ListingType = "sale"

	PropertyTypeVilla     PropertyType = "villa"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyTypeLand      PropertyType = "land"
	PropertyTypeApartment PropertyType = "apartment"
)

// Amenity pairs a label with its display icon, matching the vocabulary the
// listing importer produces ("swimming pool" -> "waves" and so on).
type Amenity struct {
	Label string `json:"label" bson:"label"`
	Icon  string `json:"icon" bson:"icon"`
}

type Property struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Reference     string             `json:"reference" bson:"reference"`
	Slug          string             `json:"slug" bson:"slug" validate:"required"`
	Title         string             `json:"title" bson:"title" validate:"required"`
	Description   string             `json:"description" bson:"description"`
	ListingType   ListingType        `json:"listing_type" bson:"listing_type" validate:"required"`
	PropertyType  PropertyType       `json:"property_type" bson:"property_type" validate:"required"`
	Status        PropertyStatus     `json:"status" bson:"status"`
	City          string             `json:"city" bson:"city"`
	Area          string             `json:"area" bson:"area"`
	AddressLine   string             `json:"address_line" bson:"address_line"`
	Latitude      float64            `json:"latitude" bson:"latitude"`
	Longitude     float64            `json:"longitude" bson:"longitude"`
	Bedrooms      int                `json:"bedrooms" bson:"bedrooms"`
	Bathrooms     int                `json:"bathrooms" bson:"bathrooms"`
	AreaSQM       float64            `json:"area_sqm" bson:"area_sqm"`
	MonthlyPrice  float64            `json:"monthly_price" bson:"monthly_price"`
	SalePrice     float64            `json:"sale_price" bson:"sale_price"`
	Currency      string             `json:"currency" bson:"currency"`
	Amenities     []Amenity          `json:"amenities" bson:"amenities"`
	Images        []string           `json:"images" bson:"images"`
	CoverImage    string             `json:"cover_image" bson:"cover_image"`
	POIScores     *poi.Scores        `json:"poi_scores,omitempty" bson:"poi_scores,omitempty"`
	POIScoredAt   *time.Time         `json:"poi_scored_at,omitempty" bson:"poi_scored_at,omitempty"`
	ViewCount     int64              `json:"view_count" bson:"view_count"`
	Featured      bool               `json:"featured" bson:"featured"`
	SourceURL     string             `json:"source_url,omitempty" bson:"source_url,omitempty"` // set by the listing importer
	PublishedAt   *time.Time         `json:"published_at" bson:"published_at"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt     *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

func (p *Property) IsPublished() bool {
	return p.Status == PropertyStatusPublished && p.DeletedAt == nil
}

// PropertySearchFilter is the public search surface.
type PropertySearchFilter struct {
	City         string       `form:"city"`
	Area         string       `form:"area"`
	ListingType  ListingType  `form:"listing_type"`
	PropertyType PropertyType `form:"property_type"`
	MinPrice     float64      `form:"min_price"`
	MaxPrice     float64      `form:"max_price"`
	MinBedrooms  int          `form:"min_bedrooms"`
	Featured     *bool        `form:"featured"`
}
