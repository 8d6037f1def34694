package validators

import (
	"time"
)

type BookingQuoteRequest struct {
	PropertyID string    `json:"property_id" validate:"required,object_id"`
	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required"`
}

type BookingCreateRequest struct {
	PropertyID string    `json:"property_id" validate:"required,object_id"`
	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required"`
	GuestName  string    `json:"guest_name" validate:"required,min=2,max=120"`
	GuestEmail string    `json:"guest_email" validate:"required,email"`
	GuestPhone string    `json:"guest_phone" validate:"omitempty,max=30"`
	Guests     int       `json:"guests" validate:"omitempty,min=1,max=20"`
	Message    string    `json:"message" validate:"omitempty,max=2000"`
	UTMSource  string    `json:"utm_source" validate:"omitempty,max=100"`
	UTMMedium  string    `json:"utm_medium" validate:"omitempty,max=100"`
	UTMCampaign string   `json:"utm_campaign" validate:"omitempty,max=100"`
}

type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in completed cancelled"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func validateStayDates(checkIn, checkOut time.Time) ValidationErrors {
	var errors ValidationErrors

	if !checkOut.After(checkIn) {
		errors = append(errors, ValidationError{
			Field:   "check_out",
			Message: "Check-out must be after check-in",
		})
	}

	if checkOut.Sub(checkIn) > 365*24*time.Hour {
		errors = append(errors, ValidationError{
			Field:   "check_out",
			Message: "Stays are limited to one year",
		})
	}

	return errors
}

func ValidateBookingQuote(req *BookingQuoteRequest) ValidationErrors {
	errors := ValidateStruct(req)
	errors = append(errors, validateStayDates(req.CheckIn, req.CheckOut)...)
	return errors
}

func ValidateBookingCreate(req *BookingCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)
	errors = append(errors, validateStayDates(req.CheckIn, req.CheckOut)...)
	return errors
}

func ValidateBookingStatus(req *BookingStatusRequest) ValidationErrors {
	return ValidateStruct(req)
}
