package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/utils"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByProperty(ctx context.Context, propertyID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetOverlapping(ctx context.Context, propertyID primitive.ObjectID, checkIn, checkOut time.Time) ([]*models.Booking, error)
	GetUpcomingCheckIns(ctx context.Context, within time.Duration) ([]*models.Booking, error)
}
