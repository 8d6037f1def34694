package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
)

type agentDecisionRepository struct {
	collection *mongo.Collection
}

func NewAgentDecisionRepository(db *mongo.Database) interfaces.AgentDecisionRepository {
	return &agentDecisionRepository{
		collection: db.Collection("agent_decisions"),
	}
}

func (r *agentDecisionRepository) Create(ctx context.Context, decision *models.AgentDecision) error {
	decision.ID = primitive.NewObjectID()
	decision.CreatedAt = time.Now()
	decision.UpdatedAt = decision.CreatedAt

	if decision.Status == "" {
		decision.Status = models.AgentStatusPending
	}

	_, err := r.collection.InsertOne(ctx, decision)
	if err != nil {
		return fmt.Errorf("failed to create agent decision: %w", err)
	}

	return nil
}

func (r *agentDecisionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AgentDecision, error) {
	var decision models.AgentDecision
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&decision)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("agent decision not found")
		}
		return nil, fmt.Errorf("failed to get agent decision: %w", err)
	}

	return &decision, nil
}

func (r *agentDecisionRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update agent decision: %w", err)
	}

	return nil
}

func (r *agentDecisionRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.AgentDecision, int64, error) {
	return r.findPage(ctx, bson.M{}, params)
}

func (r *agentDecisionRepository) GetByStatus(ctx context.Context, status models.AgentDecisionStatus, params *utils.PaginationParams) ([]*models.AgentDecision, int64, error) {
	return r.findPage(ctx, bson.M{"status": status}, params)
}

func (r *agentDecisionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count agent decisions: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		counts[row.ID] = row.Count
	}

	return counts, nil
}

func (r *agentDecisionRepository) findPage(ctx context.Context, query bson.M, params *utils.PaginationParams) ([]*models.AgentDecision, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count agent decisions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find agent decisions: %w", err)
	}
	defer cursor.Close(ctx)

	var decisions []*models.AgentDecision
	if err := cursor.All(ctx, &decisions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode agent decisions: %w", err)
	}

	return decisions, total, nil
}
