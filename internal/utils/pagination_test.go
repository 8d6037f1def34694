package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(query string) *PaginationParams {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestPaginationDefaults(t *testing.T) {
	params := paramsForQuery("")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, defaultSortField, params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestPaginationClampsPageSize(t *testing.T) {
	assert.Equal(t, MaxPageSize, paramsForQuery("page_size=9999").PageSize)
	assert.Equal(t, MinPageSize, paramsForQuery("page_size=0").PageSize)
	assert.Equal(t, 1, paramsForQuery("page=-3").Page)
}

func TestPaginationRejectsUnknownSortField(t *testing.T) {
	assert.Equal(t, defaultSortField, paramsForQuery("sort=password_hash").Sort)
	assert.Equal(t, "monthly_price", paramsForQuery("sort=monthly_price").Sort)
}

func TestPaginationNormalizesOrder(t *testing.T) {
	assert.Equal(t, "desc", paramsForQuery("order=sideways").Order)
	assert.Equal(t, "asc", paramsForQuery("order=asc").Order)
}

func TestCreatePaginationMetaEdges(t *testing.T) {
	meta := CreatePaginationMeta(&PaginationParams{Page: 1, PageSize: 10}, 10)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)
	assert.Nil(t, meta.NextPage)

	meta = CreatePaginationMeta(&PaginationParams{Page: 2, PageSize: 10}, 21)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
	assert.Equal(t, 3, *meta.NextPage)
	assert.Equal(t, 1, *meta.PreviousPage)
}
