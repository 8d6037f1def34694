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

type tm30Repository struct {
	collection *mongo.Collection
}

func NewTM30Repository(db *mongo.Database) interfaces.TM30Repository {
	return &tm30Repository{
		collection: db.Collection("tm30_registrations"),
	}
}

func (r *tm30Repository) Create(ctx context.Context, registration *models.TM30Registration) error {
	registration.ID = primitive.NewObjectID()
	registration.CreatedAt = time.Now()
	registration.UpdatedAt = registration.CreatedAt

	if registration.Status == "" {
		registration.Status = models.TM30StatusDraft
	}

	_, err := r.collection.InsertOne(ctx, registration)
	if err != nil {
		return fmt.Errorf("failed to create TM30 registration: %w", err)
	}

	return nil
}

func (r *tm30Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TM30Registration, error) {
	var registration models.TM30Registration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&registration)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("TM30 registration not found")
		}
		return nil, fmt.Errorf("failed to get TM30 registration: %w", err)
	}

	return &registration, nil
}

func (r *tm30Repository) GetByDispatchID(ctx context.Context, dispatchID string) (*models.TM30Registration, error) {
	var registration models.TM30Registration
	err := r.collection.FindOne(ctx, bson.M{"dispatch_id": dispatchID}).Decode(&registration)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("TM30 registration not found for dispatch")
		}
		return nil, fmt.Errorf("failed to get TM30 registration by dispatch ID: %w", err)
	}

	return &registration, nil
}

func (r *tm30Repository) GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.TM30Registration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to get TM30 registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var registrations []*models.TM30Registration
	if err := cursor.All(ctx, &registrations); err != nil {
		return nil, fmt.Errorf("failed to decode TM30 registrations: %w", err)
	}

	return registrations, nil
}

func (r *tm30Repository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update TM30 registration: %w", err)
	}

	return nil
}

func (r *tm30Repository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.TM30Registration, int64, error) {
	return r.findPage(ctx, bson.M{}, params)
}

func (r *tm30Repository) GetByStatus(ctx context.Context, status models.TM30Status, params *utils.PaginationParams) ([]*models.TM30Registration, int64, error) {
	return r.findPage(ctx, bson.M{"status": status}, params)
}

func (r *tm30Repository) findPage(ctx context.Context, query bson.M, params *utils.PaginationParams) ([]*models.TM30Registration, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count TM30 registrations: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find TM30 registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var registrations []*models.TM30Registration
	if err := cursor.All(ctx, &registrations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode TM30 registrations: %w", err)
	}

	return registrations, total, nil
}
