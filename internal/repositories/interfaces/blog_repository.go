package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/utils"
)

type BlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	ListPublished(ctx context.Context, tag string, params *utils.PaginationParams) ([]*models.BlogPost, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.BlogPost, int64, error)
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) error
}
