package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/poi"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/pkg/logger"
	"psmestate/pkg/maps"
)

var ErrNoCoordinates = errors.New("property has no coordinates")

// categoryQueries maps our scoring categories onto the maps vendor's place
// types. Beaches have no dedicated type, so we fall back to a keyword search.
var categoryQueries = map[poi.Category]maps.NearbyRequest{
	poi.CategoryBeach:      {Keyword: "beach"},
	poi.CategoryRestaurant: {PlaceType: "restaurant"},
	poi.CategorySchool:     {PlaceType: "school"},
	poi.CategoryHospital:   {PlaceType: "hospital"},
	poi.CategoryShopping:   {PlaceType: "supermarket"},
	poi.CategoryNightlife:  {PlaceType: "night_club"},
	poi.CategoryTransport:  {PlaceType: "bus_station"},
}

type SyncResult struct {
	PropertyID primitive.ObjectID `json:"property_id"`
	Synced     int                `json:"synced"`
	Scores     poi.Scores         `json:"scores"`
}

type POIService interface {
	SyncNearby(ctx context.Context, propertyID primitive.ObjectID) (*SyncResult, error)
	SyncAll(ctx context.Context) ([]*SyncResult, error)
	GetByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]*models.POI, error)
	Summarize(ctx context.Context, propertyID primitive.ObjectID, radiusKM float64) ([]poi.CategorySummary, error)
	Rescore(ctx context.Context, propertyID primitive.ObjectID) (*poi.Scores, error)
}

type poiService struct {
	poiRepo      interfaces.POIRepository
	propertyRepo interfaces.PropertyRepository
	maps         maps.Provider
	logger       *logger.Logger
}

func NewPOIService(
	poiRepo interfaces.POIRepository,
	propertyRepo interfaces.PropertyRepository,
	mapsProvider maps.Provider,
	log *logger.Logger,
) POIService {
	return &poiService{
		poiRepo:      poiRepo,
		propertyRepo: propertyRepo,
		maps:         mapsProvider,
		logger:       log,
	}
}

// SyncNearby refreshes the vendor-sourced places around a property and
// recomputes its scores. Manually curated places are left untouched.
func (s *poiService) SyncNearby(ctx context.Context, propertyID primitive.ObjectID) (*SyncResult, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.Latitude == 0 && property.Longitude == 0 {
		return nil, ErrNoCoordinates
	}

	if err := s.poiRepo.DeleteBySource(ctx, propertyID, utils.POISourceGoogle); err != nil {
		return nil, err
	}

	synced := 0
	now := time.Now()
	for category, query := range categoryQueries {
		request := query
		request.Latitude = property.Latitude
		request.Longitude = property.Longitude
		request.RadiusM = utils.POISearchRadiusM

		places, err := s.maps.NearbyPlaces(ctx, &request)
		if err != nil {
			s.logger.WithError(err).WithPropertyID(propertyID).
				WithField("category", string(category)).Warn("Nearby place search failed")
			continue
		}

		for _, place := range places {
			record := &models.POI{
				PropertyID: propertyID,
				PlaceID:    place.PlaceID,
				Name:       place.Name,
				Category:   category,
				Latitude:   place.Latitude,
				Longitude:  place.Longitude,
				DistanceKM: poi.Distance(property.Latitude, property.Longitude, place.Latitude, place.Longitude),
				Address:    place.Address,
				Source:     utils.POISourceGoogle,
				SyncedAt:   now,
			}
			if err := s.poiRepo.Upsert(ctx, record); err != nil {
				return nil, fmt.Errorf("failed to store place %s: %w", place.PlaceID, err)
			}
			synced++
		}
	}

	scores, err := s.Rescore(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	s.logger.WithPropertyID(propertyID).WithFields(map[string]interface{}{
		"synced":  synced,
		"overall": scores.Overall,
	}).Info("POI sync completed")

	return &SyncResult{PropertyID: propertyID, Synced: synced, Scores: *scores}, nil
}

// SyncAll runs a sync for every published property with coordinates. Failures
// on individual properties are logged and skipped.
func (s *poiService) SyncAll(ctx context.Context) ([]*SyncResult, error) {
	properties, err := s.propertyRepo.GetPublishedWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*SyncResult, 0, len(properties))
	for _, property := range properties {
		result, err := s.SyncNearby(ctx, property.ID)
		if err != nil {
			s.logger.WithError(err).WithPropertyID(property.ID).Error("POI sync failed")
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *poiService) GetByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]*models.POI, error) {
	return s.poiRepo.GetByProperty(ctx, propertyID)
}

func (s *poiService) Summarize(ctx context.Context, propertyID primitive.ObjectID, radiusKM float64) ([]poi.CategorySummary, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.Latitude == 0 && property.Longitude == 0 {
		return nil, ErrNoCoordinates
	}

	if radiusKM <= 0 {
		radiusKM = utils.POISummaryRadiusKM
	}

	records, err := s.poiRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	return poi.Summarize(property.Latitude, property.Longitude, placesOf(records), radiusKM), nil
}

// Rescore recomputes the composite scores from stored places and persists
// them on the property.
func (s *poiService) Rescore(ctx context.Context, propertyID primitive.ObjectID) (*poi.Scores, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	records, err := s.poiRepo.GetByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	scores := poi.Score(property.Latitude, property.Longitude, placesOf(records))
	if err := s.propertyRepo.UpdatePOIScores(ctx, propertyID, &scores); err != nil {
		return nil, err
	}

	return &scores, nil
}

func placesOf(records []*models.POI) []poi.Place {
	places := make([]poi.Place, 0, len(records))
	for _, r := range records {
		places = append(places, r.Place())
	}
	return places
}
