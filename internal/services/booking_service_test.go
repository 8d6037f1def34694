package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/validators"
	"psmestate/pkg/logger"
)

// Fakes embed the interface so only the methods a test exercises need
// implementing.

type fakePropertyRepo struct {
	interfaces.PropertyRepository
	property *models.Property
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	return f.property, nil
}

type fakeBookingRepo struct {
	interfaces.BookingRepository
	overlapping []*models.Booking
	created     *models.Booking
	stored      *models.Booking
	updates     map[string]interface{}
}

func (f *fakeBookingRepo) GetOverlapping(ctx context.Context, propertyID primitive.ObjectID, checkIn, checkOut time.Time) ([]*models.Booking, error) {
	return f.overlapping, nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.Status = models.BookingStatusPending
	booking.BookingNumber = "BK-TEST-0001"
	f.created = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return f.stored, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	f.stored.Status = status
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	f.updates = updates
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func rentProperty() *models.Property {
	return &models.Property{
		ID:           primitive.NewObjectID(),
		Title:        "Sea View Villa",
		Status:       models.PropertyStatusPublished,
		ListingType:  models.ListingTypeRent,
		MonthlyPrice: 60000,
		Currency:     "THB",
	}
}

func TestQuoteRejectsUnbookableProperty(t *testing.T) {
	property := rentProperty()
	property.ListingType = models.ListingTypeSale

	service := NewBookingService(&fakeBookingRepo{}, &fakePropertyRepo{property: property}, nil, nil, nil, "", testLogger(t))

	_, err := service.Quote(context.Background(), &validators.BookingQuoteRequest{
		PropertyID: property.ID.Hex(),
		CheckIn:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrPropertyNotBookable)
}

func TestCreateRejectsOverlappingDates(t *testing.T) {
	property := rentProperty()
	bookingRepo := &fakeBookingRepo{overlapping: []*models.Booking{{}}}

	service := NewBookingService(bookingRepo, &fakePropertyRepo{property: property}, nil, nil, nil, "", testLogger(t))

	_, err := service.Create(context.Background(), &validators.BookingCreateRequest{
		PropertyID: property.ID.Hex(),
		CheckIn:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		GuestName:  "Anna Larsson",
		GuestEmail: "anna@example.com",
	})
	assert.ErrorIs(t, err, ErrDatesUnavailable)
	assert.Nil(t, bookingRepo.created)
}

func TestCreateSnapshotsPricing(t *testing.T) {
	property := rentProperty()
	bookingRepo := &fakeBookingRepo{}

	service := NewBookingService(bookingRepo, &fakePropertyRepo{property: property}, nil, nil, nil, "", testLogger(t))

	booking, err := service.Create(context.Background(), &validators.BookingCreateRequest{
		PropertyID: property.ID.Hex(),
		CheckIn:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		GuestName:  "Anna Larsson",
		GuestEmail: "Anna@Example.COM ",
		Guests:     2,
	})
	require.NoError(t, err)
	require.NotNil(t, booking.Calculation)

	assert.Equal(t, "anna@example.com", booking.GuestEmail)
	assert.Equal(t, 7, booking.Calculation.Nights)
	assert.Equal(t, "THB", booking.Currency)
	assert.Positive(t, booking.Calculation.Total)
	assert.Same(t, booking, bookingRepo.created)
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	stored := &models.Booking{ID: primitive.NewObjectID(), Status: models.BookingStatusCompleted}
	bookingRepo := &fakeBookingRepo{stored: stored}

	service := NewBookingService(bookingRepo, &fakePropertyRepo{}, nil, nil, nil, "", testLogger(t))

	_, err := service.Transition(context.Background(), stored.ID, models.BookingStatusConfirmed, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionCancelRecordsReason(t *testing.T) {
	stored := &models.Booking{ID: primitive.NewObjectID(), Status: models.BookingStatusPending}
	bookingRepo := &fakeBookingRepo{stored: stored}

	service := NewBookingService(bookingRepo, &fakePropertyRepo{}, nil, nil, nil, "", testLogger(t))

	updated, err := service.Transition(context.Background(), stored.ID, models.BookingStatusCancelled, "guest request")
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCancelled, updated.Status)
	assert.Equal(t, "guest request", bookingRepo.updates["cancellation_reason"])
}
