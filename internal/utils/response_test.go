package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestPaginatedResponseDerivesMeta(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	params := &PaginationParams{Page: 2, PageSize: 10}
	PaginatedResponse(c, "Properties retrieved successfully", []string{"a", "b"}, params, 35)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, StatusSuccess, resp.Status)
	require.NotNil(t, resp.Meta)
	require.NotNil(t, resp.Meta.Pagination)

	pagination := resp.Meta.Pagination
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, int64(35), pagination.Total)
	assert.Equal(t, 4, pagination.TotalPages)
	assert.True(t, pagination.HasNext)
	assert.True(t, pagination.HasPrevious)
}

func TestGoneResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	GoneResponse(c, "INVITE_EXPIRED", "invite is no longer usable")

	assert.Equal(t, http.StatusGone, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVITE_EXPIRED", resp.Error.Code)
}

func TestRateLimitedResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RateLimitedResponse(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decodeResponse(t, w).Error.Code)
}

func TestValidationErrorResponseCarriesFieldDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationErrorResponse(c, map[string]string{"guest_email": "must be a valid email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must be a valid email", resp.Error.Details["guest_email"])
}
