// Package filters keeps the storefront filter widgets and the catalog URL in sync.
//
// A Selection holds the active filters of one catalog view. Widgets stage
// changes into a Store, a Controller decides when staged changes are
// committed (immediately or after an explicit apply), and an Adapter turns a
// committed Selection into either a client-side re-render or a full page
// navigation to the encoded query string.
package filters

import (
	"fmt"
	"slices"
	"strings"
)

// MatchMode controls how several terms of one attribute filter combine.
type MatchMode string

const (
	MatchAll MatchMode = "and"
	MatchAny MatchMode = "or"
)

// DefaultMatchMode is assumed when no query_type parameter is present.
const DefaultMatchMode = MatchAll

func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case MatchAll, MatchAny:
		return MatchMode(s), nil
	}
	return "", fmt.Errorf("unknown match mode %q", s)
}

// StockStatus is a product availability token as it appears in the URL.
type StockStatus string

const (
	InStock     StockStatus = "instock"
	OutOfStock  StockStatus = "outofstock"
	OnBackorder StockStatus = "onbackorder"
)

func ParseStockStatus(s string) (StockStatus, error) {
	switch StockStatus(s) {
	case InStock, OutOfStock, OnBackorder:
		return StockStatus(s), nil
	}
	return "", fmt.Errorf("unknown stock status %q", s)
}

// CategoryKey identifies one filter category inside a Selection.
// Attribute categories are keyed per attribute slug.
type CategoryKey string

const (
	PriceCategory CategoryKey = "price"
	StockCategory CategoryKey = "stock_status"
)

const attributePrefix = "attribute:"

func AttributeCategory(slug string) CategoryKey {
	return CategoryKey(attributePrefix + slug)
}

// AttributeSlug returns the slug of an attribute category.
func (k CategoryKey) AttributeSlug() (string, bool) {
	return strings.CutPrefix(string(k), attributePrefix)
}

// AttributeFilter is the active term set of one product attribute.
type AttributeFilter struct {
	Slug  string
	Terms []string
	Mode  MatchMode
}

// PriceRange bounds are inclusive. An empty Amount means unbounded.
type PriceRange struct {
	Min Amount
	Max Amount
}

func (p PriceRange) IsZero() bool {
	return p.Min == "" && p.Max == ""
}

// Selection is the set of active filters of one catalog view. Categories
// keep the order in which they were first selected; that order drives the
// parameter order of the encoded query string.
//
// The zero value is an empty selection. Selections are values: mutating
// helpers return a modified copy.
type Selection struct {
	order      []CategoryKey
	attributes map[string]AttributeFilter
	price      PriceRange
	stock      []StockStatus
}

func NewSelection() Selection {
	return Selection{}
}

func (s Selection) IsEmpty() bool {
	return len(s.order) == 0
}

// Categories returns the active categories in insertion order.
func (s Selection) Categories() []CategoryKey {
	return slices.Clone(s.order)
}

func (s Selection) Has(key CategoryKey) bool {
	return slices.Contains(s.order, key)
}

func (s Selection) Attribute(slug string) (AttributeFilter, bool) {
	f, ok := s.attributes[slug]
	if !ok {
		return AttributeFilter{}, false
	}
	f.Terms = slices.Clone(f.Terms)
	return f, true
}

// Attributes returns the attribute filters in insertion order.
func (s Selection) Attributes() []AttributeFilter {
	out := make([]AttributeFilter, 0, len(s.attributes))
	for _, key := range s.order {
		if slug, ok := key.AttributeSlug(); ok {
			f, _ := s.Attribute(slug)
			out = append(out, f)
		}
	}
	return out
}

func (s Selection) Price() (PriceRange, bool) {
	return s.price, s.Has(PriceCategory)
}

func (s Selection) Stock() []StockStatus {
	return slices.Clone(s.stock)
}

func (s Selection) Clone() Selection {
	out := Selection{
		order: slices.Clone(s.order),
		price: s.price,
		stock: slices.Clone(s.stock),
	}
	if s.attributes != nil {
		out.attributes = make(map[string]AttributeFilter, len(s.attributes))
		for slug, f := range s.attributes {
			f.Terms = slices.Clone(f.Terms)
			out.attributes[slug] = f
		}
	}
	return out
}

// Equal reports whether both selections hold the same filters in the same
// category order.
func (s Selection) Equal(o Selection) bool {
	return slices.Equal(s.order, o.order) && s.SameFilters(o)
}

// SameFilters is Equal without regard to category order.
func (s Selection) SameFilters(o Selection) bool {
	if len(s.order) != len(o.order) || s.price != o.price || !slices.Equal(s.stock, o.stock) {
		return false
	}
	if len(s.attributes) != len(o.attributes) {
		return false
	}
	for slug, f := range s.attributes {
		g, ok := o.attributes[slug]
		if !ok || f.Mode != g.Mode || !slices.Equal(f.Terms, g.Terms) {
			return false
		}
	}
	return true
}

// WithAttribute returns a copy with the attribute filter replaced. An empty
// term list removes the category.
func (s Selection) WithAttribute(slug string, mode MatchMode, terms ...string) Selection {
	out := s.Clone()
	out.setAttribute(slug, mode, terms)
	return out
}

func (s Selection) WithPrice(min, max Amount) Selection {
	out := s.Clone()
	out.setPrice(PriceRange{Min: min, Max: max})
	return out
}

func (s Selection) WithStock(statuses ...StockStatus) Selection {
	out := s.Clone()
	out.setStock(statuses)
	return out
}

func (s Selection) Without(key CategoryKey) Selection {
	out := s.Clone()
	out.remove(key)
	return out
}

func (s *Selection) touch(key CategoryKey) {
	if !slices.Contains(s.order, key) {
		s.order = append(s.order, key)
	}
}

func (s *Selection) remove(key CategoryKey) {
	s.order = slices.DeleteFunc(s.order, func(k CategoryKey) bool { return k == key })
	switch key {
	case PriceCategory:
		s.price = PriceRange{}
	case StockCategory:
		s.stock = nil
	default:
		if slug, ok := key.AttributeSlug(); ok {
			delete(s.attributes, slug)
			if len(s.attributes) == 0 {
				s.attributes = nil
			}
		}
	}
}

func (s *Selection) setAttribute(slug string, mode MatchMode, terms []string) {
	terms = dedupe(terms)
	if len(terms) == 0 {
		s.remove(AttributeCategory(slug))
		return
	}
	if mode == "" {
		mode = DefaultMatchMode
	}
	if s.attributes == nil {
		s.attributes = make(map[string]AttributeFilter)
	}
	s.attributes[slug] = AttributeFilter{Slug: slug, Terms: terms, Mode: mode}
	s.touch(AttributeCategory(slug))
}

func (s *Selection) setPrice(p PriceRange) {
	if p.IsZero() {
		s.remove(PriceCategory)
		return
	}
	s.price = p
	s.touch(PriceCategory)
}

func (s *Selection) setStock(statuses []StockStatus) {
	statuses = dedupe(statuses)
	if len(statuses) == 0 {
		s.remove(StockCategory)
		return
	}
	s.stock = statuses
	s.touch(StockCategory)
}

func dedupe[T comparable](in []T) []T {
	var out []T
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
