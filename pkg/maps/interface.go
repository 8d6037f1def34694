package maps

import (
	"context"
)

// Provider is the slice of the maps vendor we actually use: turning addresses
// into coordinates and finding places of a given kind around a property.
type Provider interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error)
	NearbyPlaces(ctx context.Context, request *NearbyRequest) ([]Place, error)
}

type GeocodeResult struct {
	PlaceID   string  `json:"place_id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type NearbyRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   uint    `json:"radius_m"`
	// PlaceType is a vendor place type ("restaurant", "school", ...).
	// Keyword is used instead when the vendor has no matching type.
	PlaceType string `json:"place_type"`
	Keyword   string `json:"keyword"`
}

type Place struct {
	PlaceID   string  `json:"place_id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}
