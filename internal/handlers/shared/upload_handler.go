package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"psmestate/internal/utils"
	"psmestate/pkg/storage"
)

type UploadHandler struct {
	storage storage.Provider
}

func NewUploadHandler(storageProvider storage.Provider) *UploadHandler {
	return &UploadHandler{
		storage: storageProvider,
	}
}

// UploadImage stores an image for a listing or blog post and returns its URL.
// The folder form field ("properties", "blog") namespaces the key.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}

	if fileHeader.Size > utils.MaxImageSize {
		utils.BadRequestResponse(c, "File exceeds the size limit")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if !allowedImageType(ext) {
		utils.BadRequestResponse(c, "Unsupported file type: "+ext)
		return
	}

	folder := c.DefaultPostForm("folder", "properties")
	if folder != "properties" && folder != "blog" {
		utils.BadRequestResponse(c, "Invalid folder")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "UPLOAD_FAILED", utils.ErrFileUploadFailed)
		return
	}
	defer file.Close()

	key := folder + "/" + uuid.NewString() + "." + ext

	response, err := h.storage.Upload(c.Request.Context(), &storage.UploadRequest{
		Key:         key,
		Reader:      file,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload file: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "File uploaded successfully", response)
}

// DeleteFile removes a stored object by key.
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "Key is required")
		return
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete file: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "File deleted successfully", nil)
}

func allowedImageType(ext string) bool {
	for _, allowed := range utils.AllowedImageTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
