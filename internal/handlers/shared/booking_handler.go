package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"psmestate/internal/models"
	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
)

type BookingHandler struct {
	bookingService   services.BookingService
	marketingService services.MarketingService
}

func NewBookingHandler(bookingService services.BookingService, marketingService services.MarketingService) *BookingHandler {
	return &BookingHandler{
		bookingService:   bookingService,
		marketingService: marketingService,
	}
}

// Quote prices a stay without creating anything. Public.
func (h *BookingHandler) Quote(c *gin.Context) {
	var request validators.BookingQuoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookingQuote(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	calculation, err := h.bookingService.Quote(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotBookable) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_QUOTE_FAILED", "Failed to price booking: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Booking priced successfully", calculation)
}

// Create takes a public booking request. UTM parameters on the request are
// recorded as a campaign visit so conversions are attributable.
func (h *BookingHandler) Create(c *gin.Context) {
	var request validators.BookingCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookingCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDatesUnavailable):
			utils.ConflictResponse(c, err.Error())
		case errors.Is(err, services.ErrPropertyNotBookable):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_CREATE_FAILED", "Failed to create booking: "+err.Error())
		}
		return
	}

	if request.UTMSource != "" && h.marketingService != nil {
		visit := &validators.UTMVisitRequest{
			Source:   request.UTMSource,
			Medium:   request.UTMMedium,
			Campaign: request.UTMCampaign,
			Path:     "/bookings",
		}
		// Attribution only; never fail the booking over it.
		_ = h.marketingService.TrackVisit(c.Request.Context(), visit, c.Request.Referer(), viewerKey(c))
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// GetByNumber lets a guest look up their booking by its number. Public.
func (h *BookingHandler) GetByNumber(c *gin.Context) {
	booking, err := h.bookingService.GetByBookingNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		utils.NotFoundResponse(c, "Booking")
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// List is the admin booking index, optionally filtered by status.
func (h *BookingHandler) List(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.List(c.Request.Context(), status, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_FETCH_FAILED", "Failed to list bookings: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Bookings retrieved successfully", bookings, params, total)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "Booking")
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// UpdateStatus moves a booking through its lifecycle.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.BookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookingStatus(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.Transition(c.Request.Context(), id, models.BookingStatus(request.Status), request.Reason)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Failed to update booking: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Booking status updated successfully", booking)
}
