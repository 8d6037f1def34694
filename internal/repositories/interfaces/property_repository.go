package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/poi"
	"psmestate/internal/utils"
)

type PropertyRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	GetBySlug(ctx context.Context, slug string) (*models.Property, error)
	GetByReference(ctx context.Context, reference string) (*models.Property, error)
	GetBySourceURL(ctx context.Context, sourceURL string) (*models.Property, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	// Listing queries
	Search(ctx context.Context, filter *models.PropertySearchFilter, params *utils.PaginationParams) ([]*models.Property, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Property, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]*models.Property, error)
	GetPublishedWithCoordinates(ctx context.Context) ([]*models.Property, error)

	// Counters and scores
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) error
	UpdatePOIScores(ctx context.Context, id primitive.ObjectID, scores *poi.Scores) error

	// Admin stats
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
