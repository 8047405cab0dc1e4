// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodl/inventory/internal/i18n"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestResolveLanguage(t *testing.T) {
	require.NoError(t, i18n.Initialize("en"))

	assert.Equal(t, "zh_TW", resolveLanguage("zh-TW,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", resolveLanguage("en-GB"))
	assert.Equal(t, "en", resolveLanguage("fr-FR"))
	assert.Equal(t, "zh_TW", resolveLanguage("fr-FR, zh;q=0.5"))
	assert.Equal(t, "en", resolveLanguage(""))
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.getVisitor("10.0.0.1")
	require.Len(t, rl.visitors, 1)

	rl.cleanupVisitors(time.Now())
	assert.Len(t, rl.visitors, 1)

	rl.cleanupVisitors(time.Now().Add(visitorTTL + time.Second))
	assert.Empty(t, rl.visitors)
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(nil))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}
