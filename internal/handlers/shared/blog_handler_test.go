package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlogService struct {
	services.BlogService
	post      *models.BlogPost
	firstView bool
}

func (f *fakeBlogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return f.post, nil
}

func (f *fakeBlogService) RecordView(ctx context.Context, id primitive.ObjectID, viewerKey string) (bool, error) {
	return f.firstView, nil
}

func publishedPost() *models.BlogPost {
	return &models.BlogPost{
		ID:        primitive.NewObjectID(),
		Slug:      "phuket-area-guide",
		Status:    models.BlogStatusPublished,
		ViewCount: 5,
	}
}

func getPost(t *testing.T, svc *fakeBlogService) int64 {
	t.Helper()

	router := gin.New()
	router.GET("/blog/:slug", NewBlogHandler(svc).GetBySlug)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/blog/phuket-area-guide", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ViewCount int64 `json:"view_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ViewCount
}

func TestGetBySlugCountsFirstView(t *testing.T) {
	count := getPost(t, &fakeBlogService{post: publishedPost(), firstView: true})
	assert.Equal(t, int64(6), count)
}

func TestGetBySlugSkipsRepeatView(t *testing.T) {
	count := getPost(t, &fakeBlogService{post: publishedPost(), firstView: false})
	assert.Equal(t, int64(5), count)
}
