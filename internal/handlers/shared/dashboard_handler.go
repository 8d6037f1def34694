package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"psmestate/internal/services"
	"psmestate/internal/utils"
)

type DashboardHandler struct {
	propertyService services.PropertyService
	bookingService  services.BookingService
	agentService    services.AgentService
}

func NewDashboardHandler(
	propertyService services.PropertyService,
	bookingService services.BookingService,
	agentService services.AgentService,
) *DashboardHandler {
	return &DashboardHandler{
		propertyService: propertyService,
		bookingService:  bookingService,
		agentService:    agentService,
	}
}

// Stats is the admin dashboard overview: counts per status across listings,
// bookings and pending agent work.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	properties, err := h.propertyService.StatusCounts(ctx)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to get property stats: "+err.Error())
		return
	}

	upcoming, err := h.bookingService.GetUpcomingCheckIns(ctx, 7)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to get upcoming check-ins: "+err.Error())
		return
	}

	decisions, err := h.agentService.StatusCounts(ctx)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to get agent stats: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved successfully", gin.H{
		"properties":         properties,
		"upcoming_check_ins": upcoming,
		"agent_decisions":    decisions,
	})
}
