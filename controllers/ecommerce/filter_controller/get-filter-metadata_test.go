package filter_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFilterMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init(catalog.NewMemoryRepository(catalog.DemoProducts()), nil)
	router := gin.New()
	router.GET("/api/v1/store/filters/metadata", GetFilterMetadata)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/filters/metadata", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string                `json:"message"`
		Data    models.FilterMetadata `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "Filter metadata fetched", body.Message)
	assert.Len(t, body.Data.Availability, 2)
	require.Len(t, body.Data.Attributes, 2)
	assert.Equal(t, "capacity", body.Data.Attributes[0].Slug)
	assert.Equal(t, "128gb", body.Data.Attributes[0].Terms[0].Value)
	require.NotNil(t, body.Data.PriceRange)
	assert.Equal(t, 1.99, body.Data.PriceRange.Min)
}
