package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/utils"
)

type TM30Repository interface {
	Create(ctx context.Context, registration *models.TM30Registration) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TM30Registration, error)
	GetByDispatchID(ctx context.Context, dispatchID string) (*models.TM30Registration, error)
	GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.TM30Registration, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.TM30Registration, int64, error)
	GetByStatus(ctx context.Context, status models.TM30Status, params *utils.PaginationParams) ([]*models.TM30Registration, int64, error)
}
