package widget

import (
	"context"
	"testing"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/config"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type navigatorFunc func(ctx context.Context, target string) error

func (f navigatorFunc) Navigate(ctx context.Context, target string) error { return f(ctx, target) }

type rendererFunc func(ctx context.Context, items []filters.Product) error

func (f rendererFunc) Render(ctx context.Context, items []filters.Product) error {
	return f(ctx, items)
}

func TestConfigFromSettings(t *testing.T) {
	cfg, err := ConfigFromSettings(&config.Settings{WidgetApplyMode: "gated", CatalogRenderContext: "client"})
	require.NoError(t, err)
	assert.Equal(t, filters.Gated, cfg.ApplyMode)
	assert.Equal(t, filters.ClientBlock, cfg.RenderContext)

	_, err = ConfigFromSettings(&config.Settings{WidgetApplyMode: "sometimes", CatalogRenderContext: "client"})
	assert.ErrorContains(t, err, "WIDGET_APPLY_MODE")

	_, err = ConfigFromSettings(&config.Settings{WidgetApplyMode: "immediate", CatalogRenderContext: "iframe"})
	assert.ErrorContains(t, err, "CATALOG_RENDER_CONTEXT")
}

func TestMountServerPageSeedsFromURL(t *testing.T) {
	w, err := Mount(Config{
		ApplyMode:     filters.Gated,
		RenderContext: filters.ServerPage,
		CurrentURL:    "http://shop.test/shop?filter_stock_status=bogus&max_price=20&orderby=price",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, w.ID)
	assert.Equal(t, []string{filters.ParamStockStatus}, w.Rejected)
	assert.Equal(t, "max_price=20", filters.Encode(w.Store.Current()))
	assert.Equal(t, filters.Idle, w.Controller.State())
}

func TestMountClientBlockStartsEmpty(t *testing.T) {
	var rendered []filters.Product
	w, err := Mount(Config{
		ApplyMode:     filters.Immediate,
		RenderContext: filters.ClientBlock,
		CurrentURL:    "http://shop.test/shop?max_price=20",
		Products: []filters.Product{
			{ID: "1", Name: "Single", Price: 1.99, StockStatus: filters.InStock},
			{ID: "2", Name: "Memory card", Price: 25, StockStatus: filters.InStock,
				Attributes: map[string][]string{"capacity": {"128gb"}}},
		},
		Renderer: rendererFunc(func(_ context.Context, items []filters.Product) error {
			rendered = items
			return nil
		}),
	})
	require.NoError(t, err)
	assert.True(t, w.Store.Current().IsEmpty())

	res, err := w.Controller.Change(context.Background(), filters.AddTerms("capacity", filters.MatchAny, "128gb"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, rendered, 1)
	assert.Equal(t, "Memory card", rendered[0].Name)
}

func TestMountServerPageNavigates(t *testing.T) {
	var targets []string
	w, err := Mount(Config{
		ApplyMode:     filters.Immediate,
		RenderContext: filters.ServerPage,
		CurrentURL:    "http://shop.test/shop/page/2/",
		Navigator: navigatorFunc(func(_ context.Context, target string) error {
			targets = append(targets, target)
			return nil
		}),
	})
	require.NoError(t, err)

	_, err = w.Controller.Change(context.Background(), filters.SetMaxPrice(filters.MustAmount("1.99")))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://shop.test/shop/?max_price=1.99"}, targets)
}

func TestMountRejectsBadURL(t *testing.T) {
	_, err := Mount(Config{CurrentURL: "http://[::1"})
	assert.Error(t, err)
}
