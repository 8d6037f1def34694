package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/pricing"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/logger"
	"psmestate/pkg/mailer"
	"psmestate/pkg/websocket"
)

var (
	ErrPropertyNotBookable = errors.New("property is not available for rental bookings")
	ErrDatesUnavailable    = errors.New("requested dates overlap an existing booking")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
)

type BookingService interface {
	Quote(ctx context.Context, request *validators.BookingQuoteRequest) (*pricing.BookingCalculation, error)
	Create(ctx context.Context, request *validators.BookingCreateRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)
	List(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByProperty(ctx context.Context, propertyID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetUpcomingCheckIns(ctx context.Context, withinDays int) ([]*models.Booking, error)
	Transition(ctx context.Context, id primitive.ObjectID, next models.BookingStatus, reason string) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo   interfaces.BookingRepository
	propertyRepo  interfaces.PropertyRepository
	pricingConfig *pricing.PricingConfig
	events        *websocket.Handler
	mail          *mailer.Mailer
	adminEmail    string
	logger        *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	propertyRepo interfaces.PropertyRepository,
	pricingConfig *pricing.PricingConfig,
	events *websocket.Handler,
	mail *mailer.Mailer,
	adminEmail string,
	log *logger.Logger,
) BookingService {
	if pricingConfig == nil {
		pricingConfig = pricing.DefaultConfig()
	}
	return &bookingService{
		bookingRepo:   bookingRepo,
		propertyRepo:  propertyRepo,
		pricingConfig: pricingConfig,
		events:        events,
		mail:          mail,
		adminEmail:    adminEmail,
		logger:        log,
	}
}

// Quote prices a stay without persisting anything.
func (s *bookingService) Quote(ctx context.Context, request *validators.BookingQuoteRequest) (*pricing.BookingCalculation, error) {
	property, err := s.rentableProperty(ctx, request.PropertyID)
	if err != nil {
		return nil, err
	}

	return pricing.CalculateBookingPrice(property.MonthlyPrice, request.CheckIn, request.CheckOut, s.pricingConfig)
}

func (s *bookingService) Create(ctx context.Context, request *validators.BookingCreateRequest) (*models.Booking, error) {
	property, err := s.rentableProperty(ctx, request.PropertyID)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.bookingRepo.GetOverlapping(ctx, property.ID, request.CheckIn, request.CheckOut)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, ErrDatesUnavailable
	}

	calculation, err := pricing.CalculateBookingPrice(property.MonthlyPrice, request.CheckIn, request.CheckOut, s.pricingConfig)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		PropertyID:  property.ID,
		GuestName:   request.GuestName,
		GuestEmail:  utils.NormalizeEmail(request.GuestEmail),
		GuestPhone:  request.GuestPhone,
		GuestCount:  request.Guests,
		CheckIn:     request.CheckIn,
		CheckOut:    request.CheckOut,
		Calculation: calculation,
		Currency:    property.Currency,
		Notes:       request.Message,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingCreated, map[string]interface{}{
		"property_id": property.ID.Hex(),
		"nights":      calculation.Nights,
		"total":       calculation.Total,
	})

	s.publishEvent(utils.EventBookingCreated, booking, property)
	s.notifyGuest(booking, property)

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	return s.bookingRepo.GetByBookingNumber(ctx, bookingNumber)
}

func (s *bookingService) List(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	if status != "" {
		return s.bookingRepo.GetByStatus(ctx, status, params)
	}
	return s.bookingRepo.List(ctx, params)
}

func (s *bookingService) GetByProperty(ctx context.Context, propertyID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByProperty(ctx, propertyID, params)
}

func (s *bookingService) GetUpcomingCheckIns(ctx context.Context, withinDays int) ([]*models.Booking, error) {
	if withinDays <= 0 {
		withinDays = 7
	}
	return s.bookingRepo.GetUpcomingCheckIns(ctx, time.Duration(withinDays)*24*time.Hour)
}

func (s *bookingService) Transition(ctx context.Context, id primitive.ObjectID, next models.BookingStatus, reason string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	if next == models.BookingStatusCancelled && reason != "" {
		if err := s.bookingRepo.Update(ctx, id, map[string]interface{}{"cancellation_reason": reason}); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(id, "status_changed", map[string]interface{}{"status": string(next)})
	switch next {
	case models.BookingStatusConfirmed:
		s.publishEvent(utils.EventBookingConfirmed, updated, nil)
	case models.BookingStatusCancelled:
		s.publishEvent(utils.EventBookingCancelled, updated, nil)
	}

	return updated, nil
}

func (s *bookingService) rentableProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	id, err := primitive.ObjectIDFromHex(propertyID)
	if err != nil {
		return nil, fmt.Errorf("invalid property ID: %w", err)
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !property.IsPublished() || property.ListingType != models.ListingTypeRent || property.MonthlyPrice <= 0 {
		return nil, ErrPropertyNotBookable
	}

	return property, nil
}

func (s *bookingService) publishEvent(event string, booking *models.Booking, property *models.Property) {
	if s.events == nil {
		return
	}

	data := map[string]interface{}{
		"booking_id":     booking.ID.Hex(),
		"booking_number": booking.BookingNumber,
		"status":         string(booking.Status),
		"check_in":       booking.CheckIn,
		"check_out":      booking.CheckOut,
	}
	if property != nil {
		data["property_title"] = property.Title
	}

	s.events.PublishBookingEvent(event, data)
}

func (s *bookingService) notifyGuest(booking *models.Booking, property *models.Property) {
	if s.mail == nil || !s.mail.Enabled() {
		return
	}

	subject := fmt.Sprintf("Booking request received - %s", booking.BookingNumber)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your booking request for <strong>%s</strong> "+
			"from %s to %s (%d nights, %s total). Our team will confirm availability shortly.</p>"+
			"<p>Your booking number is <strong>%s</strong>.</p>",
		booking.GuestName,
		property.Title,
		booking.CheckIn.Format("2 Jan 2006"),
		booking.CheckOut.Format("2 Jan 2006"),
		booking.Calculation.Nights,
		pricing.FormatRentalPrice(booking.Calculation.Total, booking.Currency),
		booking.BookingNumber,
	)

	recipients := []string{booking.GuestEmail}
	if s.adminEmail != "" {
		recipients = append(recipients, s.adminEmail)
	}

	if err := s.mail.Send(recipients, subject, body); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Warn("Failed to send booking email")
	}
}
