package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
)

type subscriberRepository struct {
	collection *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) interfaces.SubscriberRepository {
	return &subscriberRepository{
		collection: db.Collection("subscribers"),
	}
}

// Upsert keys on email; re-subscribing reactivates an unsubscribed record.
func (r *subscriberRepository) Upsert(ctx context.Context, subscriber *models.Subscriber) error {
	now := time.Now()
	subscriber.UpdatedAt = now
	if subscriber.SubscribedAt.IsZero() {
		subscriber.SubscribedAt = now
	}

	update := bson.M{
		"$set": bson.M{
			"name":            subscriber.Name,
			"status":          subscriber.Status,
			"klaviyo_id":      subscriber.KlaviyoID,
			"source":          subscriber.Source,
			"subscribed_at":   subscriber.SubscribedAt,
			"unsubscribed_at": subscriber.UnsubscribedAt,
			"updated_at":      now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"email": subscriber.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	return nil
}

func (r *subscriberRepository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&subscriber)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("subscriber not found")
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return &subscriber, nil
}

func (r *subscriberRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	return nil
}

func (r *subscriberRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error) {
	query := bson.M{}
	if search := params.GetSearchFilter([]string{"email", "name"}); len(search) > 0 {
		query = search
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	var subscribers []*models.Subscriber
	if err := cursor.All(ctx, &subscribers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode subscribers: %w", err)
	}

	return subscribers, total, nil
}

type priceAlertRepository struct {
	collection *mongo.Collection
}

func NewPriceAlertRepository(db *mongo.Database) interfaces.PriceAlertRepository {
	return &priceAlertRepository{
		collection: db.Collection("price_alerts"),
	}
}

func (r *priceAlertRepository) Create(ctx context.Context, alert *models.PriceAlert) error {
	alert.ID = primitive.NewObjectID()
	alert.Active = true
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create price alert: %w", err)
	}

	return nil
}

func (r *priceAlertRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PriceAlert, error) {
	var alert models.PriceAlert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("price alert not found")
		}
		return nil, fmt.Errorf("failed to get price alert: %w", err)
	}

	return &alert, nil
}

func (r *priceAlertRepository) GetActive(ctx context.Context) ([]*models.PriceAlert, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to get active price alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*models.PriceAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode price alerts: %w", err)
	}

	return alerts, nil
}

func (r *priceAlertRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update price alert: %w", err)
	}

	return nil
}

func (r *priceAlertRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, map[string]interface{}{"active": false})
}

type utmVisitRepository struct {
	collection *mongo.Collection
}

func NewUTMVisitRepository(db *mongo.Database) interfaces.UTMVisitRepository {
	return &utmVisitRepository{
		collection: db.Collection("utm_visits"),
	}
}

func (r *utmVisitRepository) Create(ctx context.Context, visit *models.UTMVisit) error {
	visit.ID = primitive.NewObjectID()
	visit.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, visit)
	if err != nil {
		return fmt.Errorf("failed to record UTM visit: %w", err)
	}

	return nil
}

func (r *utmVisitRepository) GetCampaignStats(ctx context.Context, since time.Time) ([]*models.CampaignStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id": bson.M{
				"utm_source":   "$utm_source",
				"utm_medium":   "$utm_medium",
				"utm_campaign": "$utm_campaign",
			},
			"visits": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"visits": -1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate campaign stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []*models.CampaignStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode campaign stats: %w", err)
	}

	return stats, nil
}

type inquiryRepository struct {
	collection *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) interfaces.InquiryRepository {
	return &inquiryRepository{
		collection: db.Collection("inquiries"),
	}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	inquiry.ID = primitive.NewObjectID()
	inquiry.Status = models.InquiryStatusNew
	inquiry.CreatedAt = time.Now()
	inquiry.UpdatedAt = inquiry.CreatedAt

	_, err := r.collection.InsertOne(ctx, inquiry)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}

	return nil
}

func (r *inquiryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inquiry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("inquiry not found")
		}
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}

	return &inquiry, nil
}

func (r *inquiryRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update inquiry: %w", err)
	}

	return nil
}

func (r *inquiryRepository) List(ctx context.Context, status models.InquiryStatus, params *utils.PaginationParams) ([]*models.Inquiry, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var inquiries []*models.Inquiry
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode inquiries: %w", err)
	}

	return inquiries, total, nil
}

type inviteRepository struct {
	collection *mongo.Collection
}

func NewInviteRepository(db *mongo.Database) interfaces.InviteRepository {
	return &inviteRepository{
		collection: db.Collection("invites"),
	}
}

func (r *inviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	invite.ID = primitive.NewObjectID()
	invite.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, invite)
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return nil
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	var invite models.Invite
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&invite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("invite not found")
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &invite, nil
}

func (r *inviteRepository) MarkUsed(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"used_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark invite used: %w", err)
	}

	return nil
}

func (r *inviteRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Invite, int64, error) {
	query := bson.M{}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invites: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find invites: %w", err)
	}
	defer cursor.Close(ctx)

	var invites []*models.Invite
	if err := cursor.All(ctx, &invites); err != nil {
		return nil, 0, fmt.Errorf("failed to decode invites: %w", err)
	}

	return invites, total, nil
}
