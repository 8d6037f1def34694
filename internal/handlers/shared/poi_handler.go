package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"psmestate/internal/services"
	"psmestate/internal/utils"
)

type POIHandler struct {
	poiService services.POIService
}

func NewPOIHandler(poiService services.POIService) *POIHandler {
	return &POIHandler{
		poiService: poiService,
	}
}

// GetByProperty lists the stored places around a listing. Public.
func (h *POIHandler) GetByProperty(c *gin.Context) {
	propertyID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	pois, err := h.poiService.GetByProperty(c.Request.Context(), propertyID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "POI_FETCH_FAILED", "Failed to get places: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Places retrieved successfully", pois)
}

// Summarize buckets nearby places by category for the listing page. Public.
func (h *POIHandler) Summarize(c *gin.Context) {
	propertyID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	radiusKM, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)

	summaries, err := h.poiService.Summarize(c.Request.Context(), propertyID, radiusKM)
	if err != nil {
		if errors.Is(err, services.ErrNoCoordinates) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "POI_SUMMARY_FAILED", "Failed to summarize places: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Place summary retrieved successfully", summaries)
}

// Sync refreshes the vendor places around one property. Admin.
func (h *POIHandler) Sync(c *gin.Context) {
	propertyID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.poiService.SyncNearby(c.Request.Context(), propertyID)
	if err != nil {
		if errors.Is(err, services.ErrNoCoordinates) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "POI_SYNC_FAILED", "Failed to sync places: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Places synced successfully", result)
}

// SyncAll refreshes every published property with coordinates. Admin.
func (h *POIHandler) SyncAll(c *gin.Context) {
	results, err := h.poiService.SyncAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "POI_SYNC_FAILED", "Failed to sync places: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Places synced successfully", results)
}

// Rescore recomputes location scores from stored places without hitting the
// maps vendor. Admin.
func (h *POIHandler) Rescore(c *gin.Context) {
	propertyID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	scores, err := h.poiService.Rescore(c.Request.Context(), propertyID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "POI_RESCORE_FAILED", "Failed to rescore property: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Property rescored successfully", scores)
}
