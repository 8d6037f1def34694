package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"psmestate/internal/models"
	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
)

type MarketingHandler struct {
	marketingService services.MarketingService
}

func NewMarketingHandler(marketingService services.MarketingService) *MarketingHandler {
	return &MarketingHandler{
		marketingService: marketingService,
	}
}

// Subscribe handles the public newsletter form.
func (h *MarketingHandler) Subscribe(c *gin.Context) {
	var request validators.SubscribeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateSubscribe(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	subscriber, err := h.marketingService.Subscribe(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "SUBSCRIBE_FAILED", "Failed to subscribe: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Subscribed successfully", subscriber)
}

// Unsubscribe handles one-click unsubscribe links.
func (h *MarketingHandler) Unsubscribe(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.BadRequestResponse(c, "Email is required")
		return
	}

	if err := h.marketingService.Unsubscribe(c.Request.Context(), email); err != nil {
		utils.NotFoundResponse(c, "Subscriber")
		return
	}

	utils.SuccessResponse(c, "Unsubscribed successfully", nil)
}

// ListSubscribers is the admin subscriber index.
func (h *MarketingHandler) ListSubscribers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	subscribers, total, err := h.marketingService.ListSubscribers(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "SUBSCRIBER_FETCH_FAILED", "Failed to list subscribers: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Subscribers retrieved successfully", subscribers, params, total)
}

// CreatePriceAlert registers a public price alert.
func (h *MarketingHandler) CreatePriceAlert(c *gin.Context) {
	var request validators.PriceAlertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidatePriceAlert(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	alert, err := h.marketingService.CreatePriceAlert(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICE_ALERT_FAILED", "Failed to create price alert: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Price alert created successfully", alert)
}

// DeactivatePriceAlert turns an alert off. Admin.
func (h *MarketingHandler) DeactivatePriceAlert(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.marketingService.DeactivatePriceAlert(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICE_ALERT_FAILED", "Failed to deactivate price alert: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Price alert deactivated successfully", nil)
}

// TrackVisit records a UTM-tagged landing. Public, fire-and-forget from the
// frontend.
func (h *MarketingHandler) TrackVisit(c *gin.Context) {
	var request validators.UTMVisitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUTMVisit(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	if err := h.marketingService.TrackVisit(c.Request.Context(), &request, c.Request.Referer(), viewerKey(c)); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "VISIT_TRACK_FAILED", "Failed to track visit: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Visit tracked successfully", nil)
}

// CampaignStats rolls UTM visits up per campaign. Admin.
func (h *MarketingHandler) CampaignStats(c *gin.Context) {
	days, err := time.ParseDuration(c.DefaultQuery("window", "720h"))
	if err != nil || days <= 0 {
		utils.BadRequestResponse(c, "Invalid window")
		return
	}

	stats, err := h.marketingService.CampaignStats(c.Request.Context(), time.Now().Add(-days))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "CAMPAIGN_STATS_FAILED", "Failed to get campaign stats: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Campaign stats retrieved successfully", stats)
}

// CreateInquiry handles the public contact form.
func (h *MarketingHandler) CreateInquiry(c *gin.Context) {
	var request validators.InquiryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateInquiry(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	inquiry, err := h.marketingService.CreateInquiry(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "INQUIRY_FAILED", "Failed to create inquiry: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Inquiry created successfully", inquiry)
}

// ListInquiries is the admin inquiry inbox.
func (h *MarketingHandler) ListInquiries(c *gin.Context) {
	status := models.InquiryStatus(c.Query("status"))
	params := utils.GetPaginationParams(c)

	inquiries, total, err := h.marketingService.ListInquiries(c.Request.Context(), status, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "INQUIRY_FETCH_FAILED", "Failed to list inquiries: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Inquiries retrieved successfully", inquiries, params, total)
}

// UpdateInquiryStatus marks an inquiry replied or archived. Admin.
func (h *MarketingHandler) UpdateInquiryStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		Status string `json:"status" binding:"required,oneof=new replied archived"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.marketingService.UpdateInquiryStatus(c.Request.Context(), id, models.InquiryStatus(request.Status)); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "INQUIRY_UPDATE_FAILED", "Failed to update inquiry: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Inquiry updated successfully", nil)
}
