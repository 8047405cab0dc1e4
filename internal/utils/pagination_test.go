// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 20}},
		{"?page=3&limit=50", PaginationParams{Page: 3, Limit: 50}},
		{"?page=0&limit=500", PaginationParams{Page: 1, Limit: 20}},
		{"?page=abc&limit=-1", PaginationParams{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/v1/waste"+tt.query, nil)
		assert.Equal(t, tt.want, GetPaginationParams(c), tt.query)
	}
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]int{1, 2}, 41, PaginationParams{Page: 2, Limit: 20})
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(41), result.Total)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SetPaginationHeaders(c, result)
	assert.Equal(t, "41", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "3", w.Header().Get("X-Total-Pages"))
}
