package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"psmestate/internal/models"
	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
)

type PropertyHandler struct {
	propertyService services.PropertyService
}

func NewPropertyHandler(propertyService services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Search is the public listing search.
func (h *PropertyHandler) Search(c *gin.Context) {
	var filter models.PropertySearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, "Invalid search filter: "+err.Error())
		return
	}

	params := utils.GetPaginationParams(c)
	properties, total, err := h.propertyService.Search(c.Request.Context(), &filter, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_SEARCH_FAILED", "Failed to search properties: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Properties retrieved successfully", properties, params, total)
}

// GetBySlug serves the public listing page and counts the view.
func (h *PropertyHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	property, err := h.propertyService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		utils.NotFoundResponse(c, "Property")
		return
	}
	if !property.IsPublished() {
		utils.NotFoundResponse(c, "Property")
		return
	}

	// Best effort; a failed count never breaks the page. The counter only
	// moves for the first view per visitor within the de-dup window.
	if first, err := h.propertyService.RecordView(c.Request.Context(), property.ID, viewerKey(c)); err == nil && first {
		property.ViewCount++
	}

	utils.SuccessResponse(c, "Property retrieved successfully", property)
}

// GetFeatured returns the curated homepage listings.
func (h *PropertyHandler) GetFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	properties, err := h.propertyService.GetFeatured(c.Request.Context(), limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_FETCH_FAILED", "Failed to get featured properties: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Featured properties retrieved successfully", properties)
}

// ListAll is the admin listing index, drafts included.
func (h *PropertyHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	properties, total, err := h.propertyService.ListAll(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_FETCH_FAILED", "Failed to list properties: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Properties retrieved successfully", properties, params, total)
}

func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "Property")
		return
	}

	utils.SuccessResponse(c, "Property retrieved successfully", property)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var request validators.PropertyCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidatePropertyCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_CREATE_FAILED", "Failed to create property: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Property created successfully", property)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.PropertyUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidatePropertyUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), id, &request)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_UPDATE_FAILED", "Failed to update property: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Property updated successfully", property)
}

func (h *PropertyHandler) Publish(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.Publish(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_PUBLISH_FAILED", "Failed to publish property: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Property published successfully", property)
}

func (h *PropertyHandler) Archive(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.Archive(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_ARCHIVE_FAILED", "Failed to archive property: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Property archived successfully", nil)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_DELETE_FAILED", "Failed to delete property: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Property deleted successfully", nil)
}

// Import ingests a batch from the external listing scraper. Authenticated by
// API key, not a user session.
func (h *PropertyHandler) Import(c *gin.Context) {
	var request validators.PropertyImportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidatePropertyImport(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	summary, err := h.propertyService.Import(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROPERTY_IMPORT_FAILED", "Failed to import properties: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Properties imported successfully", summary)
}
