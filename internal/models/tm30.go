package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TM30Status string

const (
	TM30StatusDraft      TM30Status = "draft"
	TM30StatusProcessing TM30Status = "processing"
	TM30StatusSubmitted  TM30Status = "submitted"
	TM30StatusApproved   TM30Status = "approved"
	TM30StatusFailed     TM30Status = "failed"
)

// TM30Guest is the passport data the immigration portal needs for one guest.
type TM30Guest struct {
	FirstName      string    `json:"first_name" bson:"first_name" validate:"required"`
	LastName       string    `json:"last_name" bson:"last_name" validate:"required"`
	Nationality    string    `json:"nationality" bson:"nationality" validate:"required"`
	PassportNumber string    `json:"passport_number" bson:"passport_number" validate:"required"`
	BirthDate      time.Time `json:"birth_date" bson:"birth_date"`
	ArrivalDate    time.Time `json:"arrival_date" bson:"arrival_date"`
}

// TM30Registration tracks one accommodation registration through the external
// automation. The browser automation against the government portal lives in a
// separate repository; this side only dispatches the workflow and accepts its
// signed callback.
type TM30Registration struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	BookingID     primitive.ObjectID  `json:"booking_id" bson:"booking_id"`
	PropertyID    primitive.ObjectID  `json:"property_id" bson:"property_id"`
	Status        TM30Status          `json:"status" bson:"status"`
	Guests        []TM30Guest         `json:"guests" bson:"guests" validate:"required,min=1,dive"`
	CheckIn       time.Time           `json:"check_in" bson:"check_in"`
	DispatchID    string              `json:"dispatch_id" bson:"dispatch_id"`
	ReceiptNumber string              `json:"receipt_number" bson:"receipt_number"`
	FailureReason string              `json:"failure_reason" bson:"failure_reason"`
	DispatchedAt  *time.Time          `json:"dispatched_at" bson:"dispatched_at"`
	CompletedAt   *time.Time          `json:"completed_at" bson:"completed_at"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

var tm30Transitions = map[TM30Status][]TM30Status{
	TM30StatusDraft:      {TM30StatusProcessing},
	TM30StatusProcessing: {TM30StatusSubmitted, TM30StatusApproved, TM30StatusFailed},
	TM30StatusSubmitted:  {TM30StatusApproved, TM30StatusFailed},
	// Failed registrations can be re-dispatched.
	TM30StatusFailed: {TM30StatusProcessing},
}

func (r *TM30Registration) CanTransitionTo(next TM30Status) bool {
	for _, allowed := range tm30Transitions[r.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (r *TM30Registration) IsTerminal() bool {
	return r.Status == TM30StatusApproved
}
