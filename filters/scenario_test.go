package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesIsConjunctiveAcrossCategories(t *testing.T) {
	sel := NewSelection().WithStock(InStock).WithPrice("", MustAmount("20"))

	got := sel.Filter(shopProducts())

	require.Len(t, got, 2)
	assert.Equal(t, "Beanie", got[0].Name)
	assert.Equal(t, "Single", got[1].Name)
}

func TestMatchesAttributeModes(t *testing.T) {
	products := []Product{
		{ID: "a", Attributes: map[string][]string{"color": {"red", "blue"}}},
		{ID: "b", Attributes: map[string][]string{"color": {"red"}}},
		{ID: "c"},
	}

	anyOf := NewSelection().WithAttribute("color", MatchAny, "red", "blue").Filter(products)
	allOf := NewSelection().WithAttribute("color", MatchAll, "red", "blue").Filter(products)

	assert.Len(t, anyOf, 2)
	require.Len(t, allOf, 1)
	assert.Equal(t, "a", allOf[0].ID)
}

func TestScenarioAttributeImmediateClientBlock(t *testing.T) {
	nav := &recordingNavigator{}
	renderer := &recordingRenderer{}
	store := NewStore()
	adapter := NewAdapter(WithProducts(shopProducts()), WithRenderer(renderer), WithNavigator(nav))
	c := NewController(Immediate, ClientBlock, store, adapter)

	require.Len(t, NewSelection().Filter(shopProducts()), 5)

	res, err := c.Change(context.Background(), AddTerms("capacity", MatchAny, "128gb"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count)
	assert.Empty(t, nav.urls)
	require.Len(t, renderer.renders, 1)
	assert.Equal(t, "Memory card", renderer.renders[0][0].Name)
}

func TestScenarioAttributeImmediateServerPage(t *testing.T) {
	nav := &recordingNavigator{}
	adapter := NewAdapter(WithNavigator(nav), WithCurrentURL(mustURL(t, "http://shop.test/shop")))
	c := NewController(Immediate, ServerPage, NewStore(), adapter)

	_, err := c.Change(context.Background(), AddTerms("capacity", MatchAny, "128gb"))
	require.NoError(t, err)

	require.Len(t, nav.urls, 1)
	assert.Equal(t, "?filter_capacity=128gb&query_type_capacity=or", "?"+mustURL(t, nav.urls[0]).RawQuery)
}

func TestScenarioPriceGatedServerPage(t *testing.T) {
	ctx := context.Background()
	nav := &recordingNavigator{}
	adapter := NewAdapter(WithNavigator(nav), WithCurrentURL(mustURL(t, "http://shop.test/shop")))
	store := NewStore()
	c := NewController(Gated, ServerPage, store, adapter)

	_, err := c.Change(ctx, SetMaxPrice(MustAmount("1.99")))
	require.NoError(t, err)
	assert.Empty(t, nav.urls, "gated mode waits for the apply button")

	res, err := c.Confirm(ctx)
	require.NoError(t, err)

	require.Len(t, nav.urls, 1)
	assert.True(t, res.Navigated)
	assert.Equal(t, "?max_price=1.99", "?"+mustURL(t, nav.urls[0]).RawQuery)

	// The server renders the page for the new URL.
	landed, err := Decode(mustURL(t, nav.urls[0]).RawQuery)
	require.NoError(t, err)
	assert.Len(t, landed.Filter(shopProducts()), 1)
}

func TestScenarioMalformedStockOnLoad(t *testing.T) {
	current := mustURL(t, "http://shop.test/shop?filter_stock_status=bogus&max_price=20")

	seed, err := DecodeLenient(current.RawQuery)
	require.ErrorIs(t, err, ErrMalformedFilterValue)
	var malformed *MalformedFilterValueError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, ParamStockStatus, malformed.Param)

	store := NewStore(WithInitialSelection(seed))
	assert.Empty(t, store.Current().Stock())
	price, ok := store.Current().Price()
	require.True(t, ok)
	assert.Equal(t, Amount("20"), price.Max)
}
