package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleMapsProvider struct {
	client *maps.Client
}

func NewGoogleMapsProvider(apiKey string) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client: client,
	}, nil
}

func (g *GoogleMapsProvider) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	req := &maps.GeocodingRequest{
		Address: address,
	}

	resp, err := g.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q", address)
	}

	first := resp[0]
	return &GeocodeResult{
		PlaceID:   first.PlaceID,
		Address:   first.FormattedAddress,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, nil
}

func (g *GoogleMapsProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	}

	resp, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("no reverse geocoding result for %f,%f", lat, lng)
	}

	first := resp[0]
	return &GeocodeResult{
		PlaceID:   first.PlaceID,
		Address:   first.FormattedAddress,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, nil
}

func (g *GoogleMapsProvider) NearbyPlaces(ctx context.Context, request *NearbyRequest) ([]Place, error) {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: request.Latitude, Lng: request.Longitude},
		Radius:   request.RadiusM,
		Keyword:  request.Keyword,
	}
	if request.PlaceType != "" {
		placeType, err := maps.ParsePlaceType(request.PlaceType)
		if err != nil {
			return nil, fmt.Errorf("invalid place type %q: %w", request.PlaceType, err)
		}
		req.Type = placeType
	}

	resp, err := g.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("nearby search failed: %w", err)
	}

	places := make([]Place, len(resp.Results))
	for i, result := range resp.Results {
		places[i] = Place{
			PlaceID:   result.PlaceID,
			Name:      result.Name,
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
			Address:   result.Vicinity,
		}
	}

	return places, nil
}
