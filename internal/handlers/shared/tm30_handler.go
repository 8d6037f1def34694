package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"psmestate/internal/models"
	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/automation"
)

type TM30Handler struct {
	tm30Service    services.TM30Service
	callbackSecret string
}

func NewTM30Handler(tm30Service services.TM30Service, callbackSecret string) *TM30Handler {
	return &TM30Handler{
		tm30Service:    tm30Service,
		callbackSecret: callbackSecret,
	}
}

func (h *TM30Handler) Create(c *gin.Context) {
	var request validators.TM30CreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateTM30Create(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	registration, err := h.tm30Service.CreateDraft(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "TM30_CREATE_FAILED", "Failed to create registration: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Registration created successfully", registration)
}

// Dispatch triggers the external submission workflow. Also used to retry a
// failed registration.
func (h *TM30Handler) Dispatch(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	registration, err := h.tm30Service.Dispatch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTM30NotDispatchable) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "TM30_DISPATCH_FAILED", "Failed to dispatch registration: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Registration dispatched successfully", registration)
}

// Callback receives the workflow result. It is unauthenticated but HMAC
// signed; the signature covers the raw body, so the body is read before
// binding.
func (h *TM30Handler) Callback(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(automation.SignatureHeader)
	if !automation.VerifySignature(h.callbackSecret, body, signature) {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.TM30CallbackRequest
	if err := bindJSON(body, &request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateTM30Callback(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	registration, err := h.tm30Service.HandleCallback(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownDispatchID):
			utils.NotFoundResponse(c, "Registration")
		case errors.Is(err, services.ErrTM30InvalidCallback):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "TM30_CALLBACK_FAILED", "Failed to process callback: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, "Callback processed successfully", registration)
}

func (h *TM30Handler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	registration, err := h.tm30Service.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "Registration")
		return
	}

	utils.SuccessResponse(c, "Registration retrieved successfully", registration)
}

func (h *TM30Handler) GetByBooking(c *gin.Context) {
	bookingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	registrations, err := h.tm30Service.GetByBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "TM30_FETCH_FAILED", "Failed to get registrations: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Registrations retrieved successfully", registrations)
}

func (h *TM30Handler) List(c *gin.Context) {
	status := models.TM30Status(c.Query("status"))
	params := utils.GetPaginationParams(c)

	registrations, total, err := h.tm30Service.List(c.Request.Context(), status, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "TM30_FETCH_FAILED", "Failed to list registrations: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Registrations retrieved successfully", registrations, params, total)
}
