package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
)

type BlogHandler struct {
	blogService services.BlogService
}

func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// ListPublished is the public blog index, optionally filtered by tag.
func (h *BlogHandler) ListPublished(c *gin.Context) {
	tag := c.Query("tag")
	params := utils.GetPaginationParams(c)

	posts, total, err := h.blogService.ListPublished(c.Request.Context(), tag, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BLOG_FETCH_FAILED", "Failed to list posts: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Posts retrieved successfully", posts, params, total)
}

// GetBySlug serves the public post page and counts the view.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.blogService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || !post.IsPublished() {
		utils.NotFoundResponse(c, "Post")
		return
	}

	if first, err := h.blogService.RecordView(c.Request.Context(), post.ID, viewerKey(c)); err == nil && first {
		post.ViewCount++
	}

	utils.SuccessResponse(c, "Post retrieved successfully", post)
}

// ListAll is the admin post index, drafts included.
func (h *BlogHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.blogService.ListAll(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BLOG_FETCH_FAILED", "Failed to list posts: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Posts retrieved successfully", posts, params, total)
}

func (h *BlogHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.blogService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "Post")
		return
	}

	utils.SuccessResponse(c, "Post retrieved successfully", post)
}

func (h *BlogHandler) Create(c *gin.Context) {
	authorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.BlogCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBlogCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	post, err := h.blogService.Create(c.Request.Context(), authorID, &request)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BLOG_CREATE_FAILED", "Failed to create post: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Post created successfully", post)
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.BlogUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBlogUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	post, err := h.blogService.Update(c.Request.Context(), id, &request)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BLOG_UPDATE_FAILED", "Failed to update post: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Post updated successfully", post)
}

func (h *BlogHandler) Publish(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.blogService.Publish(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BLOG_PUBLISH_FAILED", "Failed to publish post: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Post published successfully", post)
}

func (h *BlogHandler) Archive(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.blogService.Archive(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BLOG_ARCHIVE_FAILED", "Failed to archive post: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Post archived successfully", post)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BLOG_DELETE_FAILED", "Failed to delete post: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Post deleted successfully", nil)
}
