package filters

import "slices"

// Product is the filterable view of a catalog item.
type Product struct {
	ID          string
	Name        string
	Price       float64
	StockStatus StockStatus
	// Attributes maps an attribute slug to the term slugs the product carries.
	Attributes map[string][]string
}

// Matches reports whether p satisfies every active category of s. Terms of
// one attribute combine per the attribute's match mode.
func (s Selection) Matches(p Product) bool {
	for _, key := range s.order {
		switch key {
		case PriceCategory:
			if s.price.Min != "" && p.Price < s.price.Min.Float() {
				return false
			}
			if s.price.Max != "" && p.Price > s.price.Max.Float() {
				return false
			}
		case StockCategory:
			if !slices.Contains(s.stock, p.StockStatus) {
				return false
			}
		default:
			slug, _ := key.AttributeSlug()
			if !s.attributes[slug].matches(p.Attributes[slug]) {
				return false
			}
		}
	}
	return true
}

func (f AttributeFilter) matches(terms []string) bool {
	if f.Mode == MatchAny {
		for _, t := range f.Terms {
			if slices.Contains(terms, t) {
				return true
			}
		}
		return false
	}
	for _, t := range f.Terms {
		if !slices.Contains(terms, t) {
			return false
		}
	}
	return true
}

// Filter returns the products matching s, keeping their order.
func (s Selection) Filter(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if s.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
