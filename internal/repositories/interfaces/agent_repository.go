package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/utils"
)

type AgentDecisionRepository interface {
	Create(ctx context.Context, decision *models.AgentDecision) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AgentDecision, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.AgentDecision, int64, error)
	GetByStatus(ctx context.Context, status models.AgentDecisionStatus, params *utils.PaginationParams) ([]*models.AgentDecision, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
