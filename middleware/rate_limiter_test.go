package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimiter(nil, 1, time.Minute))
	router.GET("/api/v1/store/products", func(c *gin.Context) {
		_, limited := c.Get("rateLimiter")
		assert.False(t, limited)
		c.Status(http.StatusNoContent)
	})

	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/products", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
