package validators

import (
	"strconv"
	"time"
)

type TM30GuestRequest struct {
	FirstName    string    `json:"first_name" validate:"required,max=100"`
	LastName     string    `json:"last_name" validate:"required,max=100"`
	PassportNo   string    `json:"passport_no" validate:"required,passport"`
	Nationality  string    `json:"nationality" validate:"required,nationality"`
	BirthDate    time.Time `json:"birth_date" validate:"required"`
	ArrivalDate  time.Time `json:"arrival_date" validate:"required"`
	DepartureDate time.Time `json:"departure_date" validate:"omitempty"`
}

type TM30CreateRequest struct {
	BookingID string             `json:"booking_id" validate:"required,object_id"`
	Guests    []TM30GuestRequest `json:"guests" validate:"required,min=1,max=20,dive"`
}

type TM30CallbackRequest struct {
	DispatchID    string `json:"dispatch_id" validate:"required,max=100"`
	Status        string `json:"status" validate:"required,oneof=submitted approved failed"`
	ReceiptNumber string `json:"receipt_number" validate:"omitempty,max=100"`
	FailureReason string `json:"failure_reason" validate:"omitempty,max=1000"`
}

func ValidateTM30Create(req *TM30CreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	for i, guest := range req.Guests {
		if !guest.BirthDate.Before(time.Now()) {
			errors = append(errors, ValidationError{
				Field:   "guests[" + strconv.Itoa(i) + "].birth_date",
				Message: "Birth date must be in the past",
			})
		}
		if !guest.DepartureDate.IsZero() && !guest.DepartureDate.After(guest.ArrivalDate) {
			errors = append(errors, ValidationError{
				Field:   "guests[" + strconv.Itoa(i) + "].departure_date",
				Message: "Departure must be after arrival",
			})
		}
	}

	return errors
}

func ValidateTM30Callback(req *TM30CallbackRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.Status == "failed" && req.FailureReason == "" {
		errors = append(errors, ValidationError{
			Field:   "failure_reason",
			Message: "Failed callbacks must include a reason",
		})
	}

	return errors
}
