package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("slug", validateSlug)
	validate.RegisterValidation("currency_code", validateCurrencyCode)
	validate.RegisterValidation("latitude", validateLatitude)
	validate.RegisterValidation("longitude", validateLongitude)
	validate.RegisterValidation("passport", validatePassport)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationErrors flattens validator errors into a field->message map for
// the API error envelope.
func ValidationErrors(err error) map[string]string {
	details := make(map[string]string)
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrs {
			details[strings.ToLower(fieldErr.Field())] = "failed on '" + fieldErr.Tag() + "' validation"
		}
	}
	return details
}

func validateSlug(fl validator.FieldLevel) bool {
	return IsValidSlug(fl.Field().String())
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	validCurrencies := []string{"THB", "USD", "EUR", "GBP", "AUD", "SGD", "RUB"}

	for _, currency := range validCurrencies {
		if code == currency {
			return true
		}
	}
	return false
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}

// Passport numbers vary by country; accept 5-15 alphanumerics.
func validatePassport(fl validator.FieldLevel) bool {
	passport := strings.ToUpper(fl.Field().String())
	passportRegex := regexp.MustCompile(`^[A-Z0-9]{5,15}$`)
	return passportRegex.MatchString(passport)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidSlug(slug string) bool {
	if len(slug) == 0 || len(slug) > SlugMaxLength {
		return false
	}
	return slugRegex.MatchString(slug)
}

func IsValidURL(url string) bool {
	urlRegex := regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	return urlRegex.MatchString(url)
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	return strings.TrimSpace(cleaned)
}

// Slugify converts a title to a URL slug: lowercase, alphanumeric runs
// joined by single hyphens.
func Slugify(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	lastHyphen := true
	for _, r := range lower {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > SlugMaxLength {
		slug = strings.Trim(slug[:SlugMaxLength], "-")
	}
	return slug
}
