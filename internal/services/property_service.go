package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/cache"
	"psmestate/pkg/logger"
)

type PropertyService interface {
	Create(ctx context.Context, request *validators.PropertyCreateRequest) (*models.Property, error)
	Update(ctx context.Context, id primitive.ObjectID, request *validators.PropertyUpdateRequest) (*models.Property, error)
	Publish(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	Archive(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	GetBySlug(ctx context.Context, slug string) (*models.Property, error)
	Search(ctx context.Context, filter *models.PropertySearchFilter, params *utils.PaginationParams) ([]*models.Property, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Property, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]*models.Property, error)

	RecordView(ctx context.Context, id primitive.ObjectID, viewerKey string) (bool, error)
	Import(ctx context.Context, request *validators.PropertyImportRequest) (*ImportSummary, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

// ImportSummary reports what an importer feed run did.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type propertyService struct {
	propertyRepo interfaces.PropertyRepository
	redis        *cache.RedisCache
	views        *viewCache
	viewTTL      time.Duration
	marketing    MarketingNotifier
	logger       *logger.Logger
}

// MarketingNotifier decouples the property side from the marketing side;
// alerts fire on publish and price drops.
type MarketingNotifier interface {
	PropertyListed(ctx context.Context, property *models.Property)
	PriceDropped(ctx context.Context, property *models.Property, oldPrice float64)
}

func NewPropertyService(
	propertyRepo interfaces.PropertyRepository,
	redis *cache.RedisCache,
	viewTTL time.Duration,
	marketing MarketingNotifier,
	log *logger.Logger,
) PropertyService {
	if viewTTL <= 0 {
		viewTTL = utils.ViewDedupTTL
	}
	return &propertyService{
		propertyRepo: propertyRepo,
		redis:        redis,
		views:        newViewCache(viewTTL),
		viewTTL:      viewTTL,
		marketing:    marketing,
		logger:       log,
	}
}

func (s *propertyService) Create(ctx context.Context, request *validators.PropertyCreateRequest) (*models.Property, error) {
	property := propertyFromCreateRequest(request)

	if property.Slug == "" {
		property.Slug = utils.Slugify(property.Title)
	}
	if err := s.ensureSlugFree(ctx, property.Slug); err != nil {
		return nil, err
	}
	if property.Reference == "" {
		property.Reference = utils.GeneratePropertyReference(string(property.PropertyType))
	}
	if property.Currency == "" {
		property.Currency = utils.DefaultCurrency
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.logger.WithPropertyID(property.ID).WithField("reference", property.Reference).Info("Property created")
	return property, nil
}

func (s *propertyService) Update(ctx context.Context, id primitive.ObjectID, request *validators.PropertyUpdateRequest) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	oldMonthly := property.MonthlyPrice
	oldSale := property.SalePrice

	if request.Title != nil {
		updates["title"] = *request.Title
	}
	if request.Slug != nil && *request.Slug != property.Slug {
		if err := s.ensureSlugFree(ctx, *request.Slug); err != nil {
			return nil, err
		}
		updates["slug"] = *request.Slug
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.Status != nil {
		updates["status"] = models.PropertyStatus(*request.Status)
		if models.PropertyStatus(*request.Status) == models.PropertyStatusPublished && property.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}
	if request.City != nil {
		updates["city"] = *request.City
	}
	if request.Area != nil {
		updates["area"] = *request.Area
	}
	if request.Address != nil {
		updates["address_line"] = *request.Address
	}
	if request.Latitude != nil {
		updates["latitude"] = *request.Latitude
	}
	if request.Longitude != nil {
		updates["longitude"] = *request.Longitude
	}
	if request.Bedrooms != nil {
		updates["bedrooms"] = *request.Bedrooms
	}
	if request.Bathrooms != nil {
		updates["bathrooms"] = *request.Bathrooms
	}
	if request.AreaSQM != nil {
		updates["area_sqm"] = *request.AreaSQM
	}
	if request.MonthlyPrice != nil {
		updates["monthly_price"] = *request.MonthlyPrice
	}
	if request.SalePrice != nil {
		updates["sale_price"] = *request.SalePrice
	}
	if request.Currency != nil {
		updates["currency"] = *request.Currency
	}
	if request.Amenities != nil {
		updates["amenities"] = amenitiesFromRequest(request.Amenities)
	}
	if request.Images != nil {
		updates["images"] = request.Images
	}
	if request.CoverImage != nil {
		updates["cover_image"] = *request.CoverImage
	}

	if len(updates) == 0 {
		return property, nil
	}

	if err := s.propertyRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	updated, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.marketing != nil && updated.IsPublished() {
		if request.MonthlyPrice != nil && *request.MonthlyPrice < oldMonthly {
			s.marketing.PriceDropped(ctx, updated, oldMonthly)
		}
		if request.SalePrice != nil && *request.SalePrice < oldSale {
			s.marketing.PriceDropped(ctx, updated, oldSale)
		}
	}

	return updated, nil
}

func (s *propertyService) Publish(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.Status == models.PropertyStatusPublished {
		return property, nil
	}

	updates := map[string]interface{}{
		"status": models.PropertyStatusPublished,
	}
	if property.PublishedAt == nil {
		updates["published_at"] = time.Now()
	}

	if err := s.propertyRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	published, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.marketing != nil {
		s.marketing.PropertyListed(ctx, published)
	}

	s.logger.WithPropertyID(id).Info("Property published")
	return published, nil
}

func (s *propertyService) Archive(ctx context.Context, id primitive.ObjectID) error {
	return s.propertyRepo.Update(ctx, id, map[string]interface{}{
		"status": models.PropertyStatusArchived,
	})
}

func (s *propertyService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.propertyRepo.SoftDelete(ctx, id)
}

func (s *propertyService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	return s.propertyRepo.GetByID(ctx, id)
}

func (s *propertyService) GetBySlug(ctx context.Context, slug string) (*models.Property, error) {
	return s.propertyRepo.GetBySlug(ctx, slug)
}

func (s *propertyService) Search(ctx context.Context, filter *models.PropertySearchFilter, params *utils.PaginationParams) ([]*models.Property, int64, error) {
	return s.propertyRepo.Search(ctx, filter, params)
}

func (s *propertyService) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Property, int64, error) {
	return s.propertyRepo.ListAll(ctx, params)
}

func (s *propertyService) GetFeatured(ctx context.Context, limit int) ([]*models.Property, error) {
	return s.propertyRepo.GetFeatured(ctx, limit)
}

// RecordView bumps the view counter once per viewer per property per TTL
// window. Redis SetNX is the source of truth; when Redis is unreachable the
// in-process cache takes over so counting degrades instead of stopping.
func (s *propertyService) RecordView(ctx context.Context, id primitive.ObjectID, viewerKey string) (bool, error) {
	key := utils.CacheViewPrefix + viewerKey + ":" + id.Hex()

	first, err := s.firstSight(ctx, key)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}

	if err := s.propertyRepo.IncrementViewCount(ctx, id); err != nil {
		return false, err
	}

	return true, nil
}

func (s *propertyService) firstSight(ctx context.Context, key string) (bool, error) {
	if s.redis != nil {
		first, err := s.redis.SetNX(ctx, key, 1, s.viewTTL)
		if err == nil {
			return first, nil
		}
		s.logger.WithError(err).Warn("View de-dup falling back to in-memory cache")
	}

	return s.views.FirstSeen(key, time.Now()), nil
}

// Import upserts scraped listings keyed by source URL. Existing listings get
// price and media refreshed; status and editorial fields are left alone.
func (s *propertyService) Import(ctx context.Context, request *validators.PropertyImportRequest) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for i := range request.Properties {
		item := &request.Properties[i]

		if item.SourceURL == "" {
			summary.Skipped++
			continue
		}

		existing, err := s.propertyRepo.GetBySourceURL(ctx, item.SourceURL)
		if err == nil && existing != nil {
			updates := map[string]interface{}{
				"monthly_price": item.MonthlyPrice,
				"sale_price":    item.SalePrice,
				"images":        item.Images,
				"amenities":     amenitiesFromRequest(item.Amenities),
			}
			if item.CoverImage != "" {
				updates["cover_image"] = item.CoverImage
			}

			oldMonthly := existing.MonthlyPrice
			if err := s.propertyRepo.Update(ctx, existing.ID, updates); err != nil {
				return nil, fmt.Errorf("failed to update imported property: %w", err)
			}
			summary.Updated++

			if s.marketing != nil && existing.IsPublished() && item.MonthlyPrice > 0 && item.MonthlyPrice < oldMonthly {
				refreshed, err := s.propertyRepo.GetByID(ctx, existing.ID)
				if err == nil {
					s.marketing.PriceDropped(ctx, refreshed, oldMonthly)
				}
			}
			continue
		}

		if _, err := s.Create(ctx, item); err != nil {
			s.logger.WithError(err).WithField("source_url", item.SourceURL).Warn("Import item failed")
			summary.Skipped++
			continue
		}
		summary.Created++
	}

	s.logger.WithFields(map[string]interface{}{
		"created": summary.Created,
		"updated": summary.Updated,
		"skipped": summary.Skipped,
	}).Info("Listing import finished")

	return summary, nil
}

func (s *propertyService) StatusCounts(ctx context.Context) (map[string]int64, error) {
	return s.propertyRepo.CountByStatus(ctx)
}

func (s *propertyService) ensureSlugFree(ctx context.Context, slug string) error {
	if existing, err := s.propertyRepo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return fmt.Errorf("%w: %s", ErrSlugTaken, slug)
	}
	return nil
}

func propertyFromCreateRequest(request *validators.PropertyCreateRequest) *models.Property {
	return &models.Property{
		Title:        request.Title,
		Slug:         request.Slug,
		Description:  request.Description,
		ListingType:  models.ListingType(request.ListingType),
		PropertyType: models.PropertyType(request.PropertyType),
		City:         request.City,
		Area:         request.Area,
		AddressLine:  request.Address,
		Latitude:     request.Latitude,
		Longitude:    request.Longitude,
		Bedrooms:     request.Bedrooms,
		Bathrooms:    request.Bathrooms,
		AreaSQM:      request.AreaSQM,
		MonthlyPrice: request.MonthlyPrice,
		SalePrice:    request.SalePrice,
		Currency:     request.Currency,
		Amenities:    amenitiesFromRequest(request.Amenities),
		Images:       request.Images,
		CoverImage:   request.CoverImage,
		SourceURL:    request.SourceURL,
	}
}

func amenitiesFromRequest(amenities []validators.AmenityRequest) []models.Amenity {
	if amenities == nil {
		return nil
	}
	result := make([]models.Amenity, 0, len(amenities))
	for _, a := range amenities {
		result = append(result, models.Amenity{Label: a.Label, Icon: a.Icon})
	}
	return result
}
