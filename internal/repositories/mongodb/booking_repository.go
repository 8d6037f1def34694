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

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if booking.BookingNumber == "" {
		booking.BookingNumber = utils.GenerateBookingNumber(booking.CreatedAt)
	}

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"booking_number": bookingNumber})).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	now := time.Now()
	updates := bson.M{
		"status":     status,
		"updated_at": now,
	}

	switch status {
	case models.BookingStatusConfirmed:
		updates["confirmed_at"] = now
	case models.BookingStatusCheckedIn:
		updates["checked_in_at"] = now
	case models.BookingStatusCompleted:
		updates["completed_at"] = now
	case models.BookingStatusCancelled:
		updates["cancelled_at"] = now
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

func (r *bookingRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	query := notDeleted(bson.M{})

	if search := params.GetSearchFilter([]string{"booking_number", "guest_name", "guest_email"}); len(search) > 0 {
		query = bson.M{"$and": []bson.M{query, search}}
	}

	return r.findPage(ctx, query, params)
}

func (r *bookingRepository) GetByProperty(ctx context.Context, propertyID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findPage(ctx, notDeleted(bson.M{"property_id": propertyID}), params)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findPage(ctx, notDeleted(bson.M{"status": status}), params)
}

// GetOverlapping returns active bookings whose stay intersects [checkIn,
// checkOut). Cancelled bookings never block dates.
func (r *bookingRepository) GetOverlapping(ctx context.Context, propertyID primitive.ObjectID, checkIn, checkOut time.Time) ([]*models.Booking, error) {
	query := notDeleted(bson.M{
		"property_id": propertyID,
		"status":      bson.M{"$ne": models.BookingStatusCancelled},
		"check_in":    bson.M{"$lt": checkOut},
		"check_out":   bson.M{"$gt": checkIn},
	})

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// GetUpcomingCheckIns returns confirmed bookings checking in within the
// window, used to prompt TM30 preparation.
func (r *bookingRepository) GetUpcomingCheckIns(ctx context.Context, within time.Duration) ([]*models.Booking, error) {
	now := time.Now()
	query := notDeleted(bson.M{
		"status":   models.BookingStatusConfirmed,
		"check_in": bson.M{"$gte": now, "$lte": now.Add(within)},
	})

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming check-ins: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) findPage(ctx context.Context, query bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, total, nil
}
