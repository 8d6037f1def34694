package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/pricing"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/klaviyo"
	"psmestate/pkg/logger"
	"psmestate/pkg/mailer"
	"psmestate/pkg/websocket"
)

const (
	metricPriceAlertMatched = "Price Alert Matched"
	metricNewsletterSignup  = "Newsletter Signup"
)

type MarketingService interface {
	MarketingNotifier

	Subscribe(ctx context.Context, request *validators.SubscribeRequest) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error)

	CreatePriceAlert(ctx context.Context, request *validators.PriceAlertRequest) (*models.PriceAlert, error)
	DeactivatePriceAlert(ctx context.Context, id primitive.ObjectID) error

	TrackVisit(ctx context.Context, request *validators.UTMVisitRequest, referrer, visitorID string) error
	CampaignStats(ctx context.Context, since time.Time) ([]*models.CampaignStats, error)

	CreateInquiry(ctx context.Context, request *validators.InquiryRequest) (*models.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) error
	ListInquiries(ctx context.Context, status models.InquiryStatus, params *utils.PaginationParams) ([]*models.Inquiry, int64, error)
}

type marketingService struct {
	subscriberRepo interfaces.SubscriberRepository
	alertRepo      interfaces.PriceAlertRepository
	visitRepo      interfaces.UTMVisitRepository
	inquiryRepo    interfaces.InquiryRepository
	klaviyo        *klaviyo.Client
	mail           *mailer.Mailer
	adminEmail     string
	events         *websocket.Handler
	logger         *logger.Logger
}

func NewMarketingService(
	subscriberRepo interfaces.SubscriberRepository,
	alertRepo interfaces.PriceAlertRepository,
	visitRepo interfaces.UTMVisitRepository,
	inquiryRepo interfaces.InquiryRepository,
	klaviyoClient *klaviyo.Client,
	mail *mailer.Mailer,
	adminEmail string,
	events *websocket.Handler,
	log *logger.Logger,
) MarketingService {
	return &marketingService{
		subscriberRepo: subscriberRepo,
		alertRepo:      alertRepo,
		visitRepo:      visitRepo,
		inquiryRepo:    inquiryRepo,
		klaviyo:        klaviyoClient,
		mail:           mail,
		adminEmail:     adminEmail,
		events:         events,
		logger:         log,
	}
}

// Subscribe stores the subscriber locally and mirrors it into the newsletter
// list. The local record is the source of truth; the Klaviyo sync is
// best-effort.
func (s *marketingService) Subscribe(ctx context.Context, request *validators.SubscribeRequest) (*models.Subscriber, error) {
	email := utils.NormalizeEmail(request.Email)

	subscriber := &models.Subscriber{
		Email:        email,
		Name:         request.FirstName,
		Status:       models.SubscriberStatusActive,
		Source:       request.Source,
		SubscribedAt: time.Now(),
	}

	if s.klaviyo != nil && s.klaviyo.Enabled() {
		klaviyoID, err := s.klaviyo.UpsertProfile(ctx, &klaviyo.Profile{
			Email:     email,
			FirstName: request.FirstName,
			Properties: map[string]interface{}{
				"signup_source": request.Source,
			},
		})
		if err != nil {
			s.logger.WithError(err).WithField("email", utils.MaskEmail(email)).Warn("Klaviyo profile upsert failed")
		} else {
			subscriber.KlaviyoID = klaviyoID
		}

		if err := s.klaviyo.Subscribe(ctx, email); err != nil {
			s.logger.WithError(err).WithField("email", utils.MaskEmail(email)).Warn("Klaviyo list subscribe failed")
		}
		if err := s.klaviyo.TrackEvent(ctx, email, metricNewsletterSignup, map[string]interface{}{
			"source": request.Source,
		}); err != nil {
			s.logger.WithError(err).Warn("Klaviyo event tracking failed")
		}
	}

	if err := s.subscriberRepo.Upsert(ctx, subscriber); err != nil {
		return nil, err
	}

	return subscriber, nil
}

func (s *marketingService) Unsubscribe(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	subscriber, err := s.subscriberRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.subscriberRepo.Update(ctx, subscriber.ID, map[string]interface{}{
		"status":          models.SubscriberStatusUnsubscribed,
		"unsubscribed_at": time.Now(),
	}); err != nil {
		return err
	}

	if s.klaviyo != nil && s.klaviyo.Enabled() {
		if err := s.klaviyo.Unsubscribe(ctx, email); err != nil {
			s.logger.WithError(err).WithField("email", utils.MaskEmail(email)).Warn("Klaviyo unsubscribe failed")
		}
	}

	return nil
}

func (s *marketingService) ListSubscribers(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error) {
	return s.subscriberRepo.List(ctx, params)
}

func (s *marketingService) CreatePriceAlert(ctx context.Context, request *validators.PriceAlertRequest) (*models.PriceAlert, error) {
	alert := &models.PriceAlert{
		Email:        utils.NormalizeEmail(request.Email),
		City:         request.City,
		ListingType:  models.ListingType(request.ListingType),
		PropertyType: models.PropertyType(request.PropertyType),
		MaxPrice:     request.MaxPrice,
		MinBedrooms:  request.MinBedrooms,
		Active:       true,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

func (s *marketingService) DeactivatePriceAlert(ctx context.Context, id primitive.ObjectID) error {
	return s.alertRepo.Deactivate(ctx, id)
}

// PropertyListed fans a newly published property out to matching price
// alerts.
func (s *marketingService) PropertyListed(ctx context.Context, property *models.Property) {
	s.fireMatchingAlerts(ctx, property, "listed", 0)
}

// PriceDropped fans a price reduction out to matching price alerts.
func (s *marketingService) PriceDropped(ctx context.Context, property *models.Property, oldPrice float64) {
	s.fireMatchingAlerts(ctx, property, "price_drop", oldPrice)
}

func (s *marketingService) fireMatchingAlerts(ctx context.Context, property *models.Property, trigger string, oldPrice float64) {
	alerts, err := s.alertRepo.GetActive(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load active price alerts")
		return
	}

	fired := 0
	for _, alert := range alerts {
		if !alert.Matches(property) {
			continue
		}

		s.notifyAlert(ctx, alert, property, trigger, oldPrice)

		if err := s.alertRepo.Update(ctx, alert.ID, map[string]interface{}{
			"last_fired_at": time.Now(),
		}); err != nil {
			s.logger.WithError(err).Warn("Failed to record alert firing")
		}
		fired++
	}

	if fired > 0 {
		s.logger.WithPropertyID(property.ID).WithFields(map[string]interface{}{
			"trigger": trigger,
			"fired":   fired,
		}).Info("Price alerts fired")

		if s.events != nil {
			s.events.PublishBookingEvent(utils.EventPriceAlertFired, map[string]interface{}{
				"property_id": property.ID.Hex(),
				"trigger":     trigger,
				"fired":       fired,
			})
		}
	}
}

func (s *marketingService) notifyAlert(ctx context.Context, alert *models.PriceAlert, property *models.Property, trigger string, oldPrice float64) {
	price := property.MonthlyPrice
	if property.ListingType == models.ListingTypeSale {
		price = property.SalePrice
	}

	if s.klaviyo != nil && s.klaviyo.Enabled() {
		properties := map[string]interface{}{
			"trigger":        trigger,
			"property_title": property.Title,
			"property_slug":  property.Slug,
			"city":           property.City,
			"listing_type":   string(property.ListingType),
			"price":          price,
			"currency":       property.Currency,
		}
		if oldPrice > 0 {
			properties["old_price"] = oldPrice
		}
		if err := s.klaviyo.TrackEvent(ctx, alert.Email, metricPriceAlertMatched, properties); err != nil {
			s.logger.WithError(err).Warn("Klaviyo price alert event failed")
		}
	}

	if s.mail != nil && s.mail.Enabled() {
		subject := fmt.Sprintf("Price alert: %s", property.Title)
		body := fmt.Sprintf(
			"<p>A property matching your alert is now available:</p>"+
				"<p><strong>%s</strong> in %s at %s.</p>",
			property.Title, property.City, pricing.FormatRentalPrice(price, property.Currency),
		)
		if err := s.mail.Send([]string{alert.Email}, subject, body); err != nil {
			s.logger.WithError(err).Warn("Price alert email failed")
		}
	}
}

func (s *marketingService) TrackVisit(ctx context.Context, request *validators.UTMVisitRequest, referrer, visitorID string) error {
	visit := &models.UTMVisit{
		Source:    request.Source,
		Medium:    request.Medium,
		Campaign:  request.Campaign,
		Term:      request.Term,
		Content:   request.Content,
		Path:      request.Path,
		Referrer:  referrer,
		VisitorID: visitorID,
	}
	return s.visitRepo.Create(ctx, visit)
}

func (s *marketingService) CampaignStats(ctx context.Context, since time.Time) ([]*models.CampaignStats, error) {
	return s.visitRepo.GetCampaignStats(ctx, since)
}

func (s *marketingService) CreateInquiry(ctx context.Context, request *validators.InquiryRequest) (*models.Inquiry, error) {
	inquiry := &models.Inquiry{
		Name:    request.Name,
		Email:   utils.NormalizeEmail(request.Email),
		Phone:   request.Phone,
		Message: request.Message,
	}
	if request.PropertyID != "" {
		id, err := primitive.ObjectIDFromHex(request.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("invalid property ID: %w", err)
		}
		inquiry.PropertyID = &id
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.mail != nil && s.mail.Enabled() && s.adminEmail != "" {
		subject := fmt.Sprintf("New inquiry from %s", inquiry.Name)
		body := fmt.Sprintf(
			"<p><strong>%s</strong> (%s, %s) wrote:</p><p>%s</p>",
			inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Message,
		)
		if err := s.mail.Send([]string{s.adminEmail}, subject, body); err != nil {
			s.logger.WithError(err).Warn("Inquiry notification email failed")
		}
	}

	return inquiry, nil
}

func (s *marketingService) UpdateInquiryStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) error {
	return s.inquiryRepo.Update(ctx, id, map[string]interface{}{"status": status})
}

func (s *marketingService) ListInquiries(ctx context.Context, status models.InquiryStatus, params *utils.PaginationParams) ([]*models.Inquiry, int64, error) {
	return s.inquiryRepo.List(ctx, status, params)
}
