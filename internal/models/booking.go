package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/pricing"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCheckedIn BookingStatus = "checked_in"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID                 primitive.ObjectID          `json:"id" bson:"_id,omitempty"`
	BookingNumber      string                      `json:"booking_number" bson:"booking_number"`
	PropertyID         primitive.ObjectID          `json:"property_id" bson:"property_id" validate:"required"`
	Status             BookingStatus               `json:"status" bson:"status"`
	GuestName          string                      `json:"guest_name" bson:"guest_name" validate:"required"`
	GuestEmail         string                      `json:"guest_email" bson:"guest_email" validate:"required,email"`
	GuestPhone         string                      `json:"guest_phone" bson:"guest_phone"`
	GuestCount         int                         `json:"guest_count" bson:"guest_count"`
	CheckIn            time.Time                   `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut           time.Time                   `json:"check_out" bson:"check_out" validate:"required"`
	Calculation        *pricing.BookingCalculation `json:"calculation" bson:"calculation"`
	Currency           string                      `json:"currency" bson:"currency"`
	Notes              string                      `json:"notes" bson:"notes"`
	ConfirmedAt        *time.Time                  `json:"confirmed_at" bson:"confirmed_at"`
	CheckedInAt        *time.Time                  `json:"checked_in_at" bson:"checked_in_at"`
	CompletedAt        *time.Time                  `json:"completed_at" bson:"completed_at"`
	CancelledAt        *time.Time                  `json:"cancelled_at" bson:"cancelled_at"`
	CancellationReason string                      `json:"cancellation_reason" bson:"cancellation_reason"`
	CreatedAt          time.Time                   `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at" bson:"updated_at"`
	DeletedAt          *time.Time                  `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// bookingTransitions lists the legal status moves. Cancellation is allowed
// any time before completion.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn: {BookingStatusCompleted, BookingStatusCancelled},
}

func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
