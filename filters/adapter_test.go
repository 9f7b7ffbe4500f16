package filters

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	urls []string
	err  error
}

func (n *recordingNavigator) Navigate(_ context.Context, target string) error {
	if n.err != nil {
		return n.err
	}
	n.urls = append(n.urls, target)
	return nil
}

type recordingRenderer struct {
	renders [][]Product
}

func (r *recordingRenderer) Render(_ context.Context, items []Product) error {
	r.renders = append(r.renders, items)
	return nil
}

// shopProducts mirrors the five-product demo catalog.
func shopProducts() []Product {
	return []Product{
		{ID: "1", Name: "Hoodie", Price: 42, StockStatus: InStock, Attributes: map[string][]string{"color": {"blue"}}},
		{ID: "2", Name: "Beanie", Price: 18, StockStatus: InStock, Attributes: map[string][]string{"color": {"red"}}},
		{ID: "3", Name: "Album", Price: 15, StockStatus: OutOfStock},
		{ID: "4", Name: "Single", Price: 1.99, StockStatus: InStock},
		{ID: "5", Name: "Memory card", Price: 25, StockStatus: InStock, Attributes: map[string][]string{"capacity": {"128gb"}}},
	}
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestAdapterClientBlockRendersWithoutNavigation(t *testing.T) {
	nav := &recordingNavigator{}
	renderer := &recordingRenderer{}
	a := NewAdapter(WithProducts(shopProducts()), WithRenderer(renderer), WithNavigator(nav))

	res, err := a.Apply(context.Background(), NewSelection().WithStock(InStock), ClientBlock)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Count)
	assert.False(t, res.Navigated)
	assert.Empty(t, nav.urls)
	require.Len(t, renderer.renders, 1)
	assert.Len(t, renderer.renders[0], 4)
}

func TestAdapterServerPageNavigates(t *testing.T) {
	nav := &recordingNavigator{}
	a := NewAdapter(WithNavigator(nav), WithCurrentURL(mustURL(t, "http://shop.test/shop")))

	res, err := a.Apply(context.Background(), NewSelection().WithPrice("", MustAmount("1.99")), ServerPage)
	require.NoError(t, err)

	assert.True(t, res.Navigated)
	require.Equal(t, []string{"http://shop.test/shop?max_price=1.99"}, nav.urls)
	assert.Equal(t, "?max_price=1.99", "?"+mustURL(t, nav.urls[0]).RawQuery)
}

func TestAdapterServerPageIsIdempotent(t *testing.T) {
	nav := &recordingNavigator{}
	a := NewAdapter(WithNavigator(nav), WithCurrentURL(mustURL(t, "http://shop.test/shop")))
	sel := NewSelection().WithAttribute("capacity", MatchAny, "128gb")

	first, err := a.Apply(context.Background(), sel, ServerPage)
	require.NoError(t, err)
	second, err := a.Apply(context.Background(), sel, ServerPage)
	require.NoError(t, err)

	assert.True(t, first.Navigated)
	assert.False(t, second.Navigated)
	assert.Len(t, nav.urls, 1)
}

func TestAdapterServerPageSelectionAlreadyInURL(t *testing.T) {
	nav := &recordingNavigator{}
	current := mustURL(t, "http://shop.test/shop/page/3/?query_type_capacity=or&filter_capacity=128gb")
	a := NewAdapter(WithNavigator(nav), WithCurrentURL(current))

	res, err := a.Apply(context.Background(), NewSelection().WithAttribute("capacity", MatchAny, "128gb"), ServerPage)
	require.NoError(t, err)

	assert.False(t, res.Navigated)
	assert.Empty(t, nav.urls)
	assert.Equal(t, current.String(), res.URL, "unchanged filters keep the current page")
}

func TestAdapterNavigationFailure(t *testing.T) {
	nav := &recordingNavigator{err: errors.New("net::ERR_ABORTED")}
	a := NewAdapter(WithNavigator(nav), WithCurrentURL(mustURL(t, "http://shop.test/shop")))

	_, err := a.Apply(context.Background(), NewSelection().WithStock(InStock), ServerPage)
	require.ErrorIs(t, err, ErrNavigationAborted)
	assert.Equal(t, "http://shop.test/shop", a.CurrentURL())
}

func TestAdapterNavigationFailureKeepsCause(t *testing.T) {
	nav := &recordingNavigator{err: context.Canceled}
	a := NewAdapter(WithNavigator(nav), WithCurrentURL(mustURL(t, "http://shop.test/shop")))

	_, err := a.Apply(context.Background(), NewSelection().WithPrice("", MustAmount("1.99")), ServerPage)

	require.ErrorIs(t, err, ErrNavigationAborted)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdapterEventsAfterNavigationAreAborted(t *testing.T) {
	nav := &recordingNavigator{}
	a := NewAdapter(WithNavigator(nav), WithCurrentURL(mustURL(t, "http://shop.test/shop")))

	_, err := a.Apply(context.Background(), NewSelection().WithStock(InStock), ServerPage)
	require.NoError(t, err)
	_, err = a.Apply(context.Background(), NewSelection().WithStock(OutOfStock), ServerPage)

	require.ErrorIs(t, err, ErrNavigationAborted)
	assert.Len(t, nav.urls, 1)
}

func TestTargetURL(t *testing.T) {
	tests := []struct {
		name    string
		current string
		sel     Selection
		want    string
	}{
		{
			name:    "preserves unrelated params and resets paging",
			current: "http://shop.test/shop?orderby=price&paged=4&filter_color=red",
			sel:     NewSelection().WithPrice("", MustAmount("1.99")),
			want:    "http://shop.test/shop?orderby=price&max_price=1.99",
		},
		{
			name:    "drops pretty pagination path",
			current: "http://shop.test/shop/page/2/?orderby=date",
			sel:     NewSelection().WithStock(OutOfStock),
			want:    "http://shop.test/shop/?orderby=date&filter_stock_status=outofstock",
		},
		{
			name:    "clearing every filter leaves no query",
			current: "http://shop.test/shop?min_price=1&max_price=2&query_type_size=or&filter_size=s",
			sel:     NewSelection(),
			want:    "http://shop.test/shop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetURL(mustURL(t, tt.current), tt.sel).String())
		})
	}
}
