package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/utils"
)

type SubscriberRepository interface {
	Upsert(ctx context.Context, subscriber *models.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error)
}

type PriceAlertRepository interface {
	Create(ctx context.Context, alert *models.PriceAlert) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PriceAlert, error)
	GetActive(ctx context.Context) ([]*models.PriceAlert, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type UTMVisitRepository interface {
	Create(ctx context.Context, visit *models.UTMVisit) error
	GetCampaignStats(ctx context.Context, since time.Time) ([]*models.CampaignStats, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	List(ctx context.Context, status models.InquiryStatus, params *utils.PaginationParams) ([]*models.Inquiry, int64, error)
}

type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	MarkUsed(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Invite, int64, error)
}
