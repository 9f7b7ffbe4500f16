package catalog

import (
	"context"
	"math"
	"slices"
	"sort"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
)

// MemoryRepository serves a fixed product list. Client-rendered catalog
// blocks load the same list up front and filter it locally.
type MemoryRepository struct {
	products []models.Product
}

func NewMemoryRepository(products []models.Product) *MemoryRepository {
	return &MemoryRepository{products: products}
}

// Active returns the products visible on the storefront.
func (r *MemoryRepository) Active() []models.Product {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Status == "Active" {
			out = append(out, p)
		}
	}
	return out
}

// Filterable returns the active products as the filter widgets see them.
func (r *MemoryRepository) Filterable() []filters.Product {
	active := r.Active()
	out := make([]filters.Product, len(active))
	for i, p := range active {
		out[i] = p.Filterable()
	}
	return out
}

func (r *MemoryRepository) List(_ context.Context, sel filters.Selection, page, limit int) ([]models.Product, int, error) {
	var matched []models.Product
	for _, p := range r.Active() {
		if sel.Matches(p.Filterable()) {
			matched = append(matched, p)
		}
	}

	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []models.Product{}, len(matched), nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], len(matched), nil
}

func (r *MemoryRepository) Metadata(_ context.Context) (*models.FilterMetadata, error) {
	active := r.Active()
	meta := &models.FilterMetadata{
		Availability: []models.FilterOption{},
		Attributes:   []models.AttributeData{},
	}

	stock := map[string]int{}
	terms := map[string]map[string]int{}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range active {
		stock[p.StockStatus]++
		for slug, values := range p.Filterable().Attributes {
			if terms[slug] == nil {
				terms[slug] = map[string]int{}
			}
			// One count per product, like COUNT(DISTINCT p.id).
			for _, v := range slices.Compact(slices.Sorted(slices.Values(values))) {
				terms[slug][v]++
			}
		}
		if p.Price > 0 {
			lo, hi = math.Min(lo, p.Price), math.Max(hi, p.Price)
		}
	}

	for _, st := range []filters.StockStatus{filters.InStock, filters.OutOfStock, filters.OnBackorder} {
		if n := stock[string(st)]; n > 0 {
			meta.Availability = append(meta.Availability, models.FilterOption{
				Label: stockLabels[st], Value: string(st), Count: n,
			})
		}
	}

	for _, slug := range sortedKeys(terms) {
		data := models.AttributeData{Slug: slug}
		for _, term := range sortedKeys(terms[slug]) {
			data.Terms = append(data.Terms, models.FilterOption{Label: term, Value: term, Count: terms[slug][term]})
		}
		meta.Attributes = append(meta.Attributes, data)
	}

	// Same fallback as the SQL query: 0..1000 for an empty catalog.
	meta.PriceRange = &models.PriceRangeData{Min: 0, Max: 1000}
	if !math.IsInf(lo, 1) {
		meta.PriceRange = &models.PriceRangeData{Min: lo, Max: hi}
	}
	return meta, nil
}

var stockLabels = map[filters.StockStatus]string{
	filters.InStock:     "In stock",
	filters.OutOfStock:  "Out of stock",
	filters.OnBackorder: "On backorder",
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
