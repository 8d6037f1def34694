package validators

import "strconv"

type AmenityRequest struct {
	Label string `json:"label" validate:"required,max=60"`
	Icon  string `json:"icon" validate:"omitempty,max=60"`
}

type PropertyCreateRequest struct {
	Title        string           `json:"title" validate:"required,min=5,max=200"`
	Slug         string           `json:"slug" validate:"omitempty,slug,max=120"`
	Description  string           `json:"description" validate:"omitempty,max=20000"`
	ListingType  string           `json:"listing_type" validate:"required,oneof=rent sale"`
	PropertyType string           `json:"property_type" validate:"required,oneof=villa condo townhouse apartment land"`
	City         string           `json:"city" validate:"required,max=100"`
	Area         string           `json:"area" validate:"omitempty,max=100"`
	Address      string           `json:"address" validate:"omitempty,max=255"`
	Latitude     float64          `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    float64          `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Bedrooms     int              `json:"bedrooms" validate:"omitempty,min=0,max=20"`
	Bathrooms    int              `json:"bathrooms" validate:"omitempty,min=0,max=20"`
	AreaSQM      float64          `json:"area_sqm" validate:"omitempty,min=0"`
	MonthlyPrice float64          `json:"monthly_price" validate:"omitempty,min=0"`
	SalePrice    float64          `json:"sale_price" validate:"omitempty,min=0"`
	Currency     string           `json:"currency" validate:"omitempty,currency_code"`
	Amenities    []AmenityRequest `json:"amenities" validate:"omitempty,max=60,dive"`
	Images       []string         `json:"images" validate:"omitempty,max=40,dive,url"`
	CoverImage   string           `json:"cover_image" validate:"omitempty,url"`
	VideoURL     string           `json:"video_url" validate:"omitempty,url"`
	SourceURL    string           `json:"source_url" validate:"omitempty,url"`
}

type PropertyUpdateRequest struct {
	Title        *string          `json:"title" validate:"omitempty,min=5,max=200"`
	Slug         *string          `json:"slug" validate:"omitempty,slug,max=120"`
	Description  *string          `json:"description" validate:"omitempty,max=20000"`
	Status       *string          `json:"status" validate:"omitempty,oneof=draft published archived"`
	City         *string          `json:"city" validate:"omitempty,max=100"`
	Area         *string          `json:"area" validate:"omitempty,max=100"`
	Address      *string          `json:"address" validate:"omitempty,max=255"`
	Latitude     *float64         `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64         `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Bedrooms     *int             `json:"bedrooms" validate:"omitempty,min=0,max=20"`
	Bathrooms    *int             `json:"bathrooms" validate:"omitempty,min=0,max=20"`
	AreaSQM      *float64         `json:"area_sqm" validate:"omitempty,min=0"`
	MonthlyPrice *float64         `json:"monthly_price" validate:"omitempty,min=0"`
	SalePrice    *float64         `json:"sale_price" validate:"omitempty,min=0"`
	Currency     *string          `json:"currency" validate:"omitempty,currency_code"`
	Amenities    []AmenityRequest `json:"amenities" validate:"omitempty,max=60,dive"`
	Images       []string         `json:"images" validate:"omitempty,max=40,dive,url"`
	CoverImage   *string          `json:"cover_image" validate:"omitempty,url"`
	VideoURL     *string          `json:"video_url" validate:"omitempty,url"`
}

type PropertyImportRequest struct {
	Properties []PropertyCreateRequest `json:"properties" validate:"required,min=1,max=500,dive"`
}

func ValidatePropertyCreate(req *PropertyCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.ListingType == "rent" && req.MonthlyPrice <= 0 {
		errors = append(errors, ValidationError{
			Field:   "monthly_price",
			Message: "Rental listings need a monthly price",
		})
	}

	if req.ListingType == "sale" && req.SalePrice <= 0 {
		errors = append(errors, ValidationError{
			Field:   "sale_price",
			Message: "Sale listings need a sale price",
		})
	}

	// Coordinates come together or not at all
	if (req.Latitude == 0) != (req.Longitude == 0) {
		errors = append(errors, ValidationError{
			Field:   "longitude",
			Message: "Latitude and longitude must both be set",
		})
	}

	return errors
}

func ValidatePropertyUpdate(req *PropertyUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidatePropertyImport(req *PropertyImportRequest) ValidationErrors {
	errors := ValidateStruct(req)

	for i := range req.Properties {
		for _, fieldErr := range ValidatePropertyCreate(&req.Properties[i]) {
			fieldErr.Field = "properties[" + strconv.Itoa(i) + "]." + fieldErr.Field
			errors = append(errors, fieldErr)
		}
	}

	return errors
}
