package validators

type SubscribeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	Source    string `json:"source" validate:"omitempty,max=100"`
}

type PriceAlertRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	City         string  `json:"city" validate:"omitempty,max=100"`
	ListingType  string  `json:"listing_type" validate:"omitempty,oneof=rent sale"`
	PropertyType string  `json:"property_type" validate:"omitempty,oneof=villa condo townhouse apartment land"`
	MinBedrooms  int     `json:"min_bedrooms" validate:"omitempty,min=0,max=20"`
	MaxPrice     float64 `json:"max_price" validate:"required,min=1"`
}

type UTMVisitRequest struct {
	Source   string `json:"source" validate:"required,max=100"`
	Medium   string `json:"medium" validate:"omitempty,max=100"`
	Campaign string `json:"campaign" validate:"omitempty,max=100"`
	Term     string `json:"term" validate:"omitempty,max=200"`
	Content  string `json:"content" validate:"omitempty,max=200"`
	Path     string `json:"path" validate:"omitempty,max=500"`
}

type InquiryRequest struct {
	PropertyID string `json:"property_id" validate:"omitempty,object_id"`
	Name       string `json:"name" validate:"required,min=2,max=120"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Message    string `json:"message" validate:"required,max=4000"`
}

func ValidateSubscribe(req *SubscribeRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidatePriceAlert(req *PriceAlertRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateUTMVisit(req *UTMVisitRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateInquiry(req *InquiryRequest) ValidationErrors {
	return ValidateStruct(req)
}
