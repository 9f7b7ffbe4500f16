//go:build e2e

package browser

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/catalog"
	store_product "github.com/Modeva-Ecommerce/modeva-storefront-filters/controllers/ecommerce/product_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/routes/ecommerce_routes"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/widget"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store_product.Init(catalog.NewMemoryRepository(catalog.DemoProducts()), nil, nil)

	router := gin.New()
	ecommerce_routes.SetupStorefrontRoutes(router.Group("/api/v1"))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func readCatalogPage(t *testing.T, nav *RodNavigator) models.CatalogPage {
	t.Helper()
	// Chrome renders a JSON response inside a single <pre>.
	text, err := nav.Text("pre")
	require.NoError(t, err)

	var body struct {
		Data models.CatalogPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	return body.Data
}

func TestGatedPriceFilterNavigatesServerPage(t *testing.T) {
	ctx := context.Background()
	srv := catalogServer(t)

	client, err := Launch(DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	shop := srv.URL + "/api/v1/store/products"
	nav, err := client.Open(ctx, shop)
	require.NoError(t, err)
	assert.Equal(t, 5, readCatalogPage(t, nav).Total)

	w, err := widget.Mount(widget.Config{
		ApplyMode:     filters.Gated,
		RenderContext: filters.ServerPage,
		CurrentURL:    shop,
		Navigator:     nav,
	})
	require.NoError(t, err)

	_, err = w.Controller.Change(ctx, filters.SetMaxPrice(filters.MustAmount("1.99")))
	require.NoError(t, err)
	current, err := nav.URL()
	require.NoError(t, err)
	assert.Equal(t, shop, current, "gated widget waits for confirm")

	res, err := w.Controller.Confirm(ctx)
	require.NoError(t, err)
	assert.True(t, res.Navigated)
	require.NoError(t, nav.WaitLoad(ctx), "the widget does not wait for the new page")

	landed, err := nav.URL()
	require.NoError(t, err)
	u, err := url.Parse(landed)
	require.NoError(t, err)
	assert.Equal(t, "max_price=1.99", u.RawQuery)

	page := readCatalogPage(t, nav)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "?max_price=1.99", page.Query)
}

func TestMalformedStockParamOnLoad(t *testing.T) {
	ctx := context.Background()
	srv := catalogServer(t)

	client, err := Launch(DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	nav, err := client.Open(ctx, srv.URL+"/api/v1/store/products?filter_stock_status=bogus")
	require.NoError(t, err)

	page := readCatalogPage(t, nav)
	assert.Equal(t, []string{filters.ParamStockStatus}, page.Rejected)
	assert.Equal(t, 5, page.Total)
}
