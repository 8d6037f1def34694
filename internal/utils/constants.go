package utils

import "time"

// Application Constants
const (
	AppName    = "PSM Estate"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "THB"
	DefaultTimeZone = "Asia/Bangkok"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	InviteTokenLength  = 32

	// Listings
	MaxGalleryImages   = 40
	MaxAmenities       = 60
	SlugMaxLength      = 120
	ReferenceLength    = 8
	MinMonthlyPrice    = 1000.0
	MaxBedroomCount    = 20

	// Bookings
	BookingNumberLength = 10
	MaxStayNights       = 365

	// POI
	POISearchRadiusM   = 5000
	POISummaryRadiusKM = 5.0
	MaxPOIPerCategory  = 20
	POISourceGoogle    = "google"
	POISourceManual    = "manual"

	// View Counting
	ViewDedupTTL = 30 * time.Minute

	// File Upload
	MaxImageSize    = 5 * 1024 * 1024  // 5MB
	MaxDocumentSize = 10 * 1024 * 1024 // 10MB

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
	InquiryRateLimit = 10

	// AI Agent
	AgentRequestTimeout = 120 * time.Second
	MaxPromptLength     = 8000
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrFileUploadFailed   = "file upload failed"
	ErrPropertyNotFound   = "property not found"
	ErrBookingNotFound    = "booking not found"
	ErrInvalidTransition  = "invalid status transition"
	ErrInviteExpired      = "invite expired or already used"
)

// Cache Keys
const (
	CacheUserPrefix      = "user:"
	CachePropertyPrefix  = "property:"
	CacheBlogPrefix      = "blog:"
	CacheViewPrefix      = "view:"
	CacheRateLimitPrefix = "rate_limit:"
	CacheSessionPrefix   = "session:"
	CacheCampaignPrefix  = "campaign:"

	// TTL for slug-keyed read-through entries on public pages.
	CacheSlugTTL = 10 * time.Minute
)

// Event Types
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventTM30Dispatched   = "tm30_dispatched"
	EventTM30Completed    = "tm30_completed"
	EventTM30Failed       = "tm30_failed"
	EventAgentProposed    = "agent_proposed"
	EventAgentReviewed    = "agent_reviewed"
	EventAgentExecuted    = "agent_executed"
	EventPriceAlertFired  = "price_alert_fired"
)

// File Types
var (
	AllowedImageTypes    = []string{"jpg", "jpeg", "png", "gif", "webp"}
	AllowedDocumentTypes = []string{"pdf", "doc", "docx", "txt"}
)
