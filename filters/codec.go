package filters

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names shared with the server-rendered catalog page.
const (
	ParamMinPrice     = "min_price"
	ParamMaxPrice     = "max_price"
	ParamStockStatus  = "filter_stock_status"
	attrFilterPrefix  = "filter_"
	attrQueryTypePfx  = "query_type_"
	valueSeparator    = ","
	paramSeparator    = "&"
	keyValueSeparator = "="
)

// AttributeParam returns the filter parameter name of an attribute.
func AttributeParam(slug string) string { return attrFilterPrefix + slug }

// QueryTypeParam returns the match mode parameter name of an attribute.
func QueryTypeParam(slug string) string { return attrQueryTypePfx + slug }

// IsFilterParam reports whether a query parameter belongs to the filter
// protocol. Pagination and unrelated parameters return false.
func IsFilterParam(name string) bool {
	return name == ParamMinPrice || name == ParamMaxPrice ||
		strings.HasPrefix(name, attrFilterPrefix) || strings.HasPrefix(name, attrQueryTypePfx)
}

// Encode serializes s into a query fragment without the leading '?'.
// Categories are emitted in insertion order and absent ones are omitted.
// The output is used for bookmarkable URLs and cache keys, so it must stay
// byte-for-byte stable.
func Encode(s Selection) string {
	params := make([]string, 0, len(s.order)+1)
	for _, key := range s.order {
		switch key {
		case PriceCategory:
			if s.price.Min != "" {
				params = append(params, ParamMinPrice+keyValueSeparator+string(s.price.Min))
			}
			if s.price.Max != "" {
				params = append(params, ParamMaxPrice+keyValueSeparator+string(s.price.Max))
			}
		case StockCategory:
			values := make([]string, len(s.stock))
			for i, st := range s.stock {
				values[i] = string(st)
			}
			params = append(params, ParamStockStatus+keyValueSeparator+joinValues(values))
		default:
			slug, _ := key.AttributeSlug()
			f := s.attributes[slug]
			name := url.QueryEscape(slug)
			params = append(params, attrFilterPrefix+name+keyValueSeparator+joinValues(f.Terms))
			if len(f.Terms) > 1 || f.Mode != DefaultMatchMode {
				params = append(params, attrQueryTypePfx+name+keyValueSeparator+string(f.Mode))
			}
		}
	}
	return strings.Join(params, paramSeparator)
}

func joinValues(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	return strings.Join(escaped, valueSeparator)
}

// Decode parses a query string (with or without the leading '?'). Unknown
// parameters are ignored. If any filter value is malformed the whole
// selection is rejected: an empty Selection is returned together with the
// *MalformedFilterValueError of every offending parameter.
func Decode(query string) (Selection, error) {
	sel, err := DecodeLenient(query)
	if err != nil {
		return NewSelection(), err
	}
	return sel, nil
}

// DecodeLenient is Decode for callers that must keep well-formed categories:
// only the categories with a malformed parameter are dropped.
func DecodeLenient(query string) (Selection, error) {
	d := decoder{
		terms: make(map[string][]string),
		modes: make(map[string]MatchMode),
		bad:   make(map[CategoryKey]bool),
	}
	for _, piece := range strings.Split(strings.TrimPrefix(query, "?"), paramSeparator) {
		if piece == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(piece, keyValueSeparator)
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			continue
		}
		d.param(name, rawValue)
	}
	return d.selection(), errors.Join(d.errs...)
}

type decoder struct {
	order []CategoryKey
	terms map[string][]string
	modes map[string]MatchMode
	price PriceRange
	stock []StockStatus
	bad   map[CategoryKey]bool
	errs  []error
}

func (d *decoder) param(name, rawValue string) {
	switch {
	case name == ParamMinPrice || name == ParamMaxPrice:
		d.touch(PriceCategory)
		value, err := url.QueryUnescape(rawValue)
		var amount Amount
		if err == nil {
			amount, err = ParseAmount(value)
		}
		if err != nil {
			d.fail(PriceCategory, name, rawValue, err)
			return
		}
		if name == ParamMinPrice {
			d.price.Min = amount
		} else {
			d.price.Max = amount
		}

	case name == ParamStockStatus:
		d.touch(StockCategory)
		values, err := splitValues(rawValue)
		if err != nil {
			d.fail(StockCategory, name, rawValue, err)
			return
		}
		for _, v := range values {
			st, err := ParseStockStatus(v)
			if err != nil {
				d.fail(StockCategory, name, rawValue, err)
				return
			}
			d.stock = append(d.stock, st)
		}

	case strings.HasPrefix(name, attrFilterPrefix):
		slug := strings.TrimPrefix(name, attrFilterPrefix)
		if slug == "" {
			return
		}
		key := AttributeCategory(slug)
		d.touch(key)
		values, err := splitValues(rawValue)
		if err != nil {
			d.fail(key, name, rawValue, err)
			return
		}
		d.terms[slug] = append(d.terms[slug], values...)

	case strings.HasPrefix(name, attrQueryTypePfx):
		slug := strings.TrimPrefix(name, attrQueryTypePfx)
		if slug == "" {
			return
		}
		key := AttributeCategory(slug)
		d.touch(key)
		value, err := url.QueryUnescape(rawValue)
		var mode MatchMode
		if err == nil {
			mode, err = ParseMatchMode(value)
		}
		if err != nil {
			d.fail(key, name, rawValue, err)
			return
		}
		d.modes[slug] = mode
	}
}

func splitValues(raw string) ([]string, error) {
	parts := strings.Split(raw, valueSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v, err := url.QueryUnescape(p)
		if err != nil {
			return nil, err
		}
		if v == "" {
			return nil, fmt.Errorf("empty value")
		}
		out = append(out, v)
	}
	return out, nil
}

func (d *decoder) touch(key CategoryKey) {
	for _, k := range d.order {
		if k == key {
			return
		}
	}
	d.order = append(d.order, key)
}

func (d *decoder) fail(key CategoryKey, param, value string, err error) {
	d.bad[key] = true
	d.errs = append(d.errs, &MalformedFilterValueError{Param: param, Value: value, Err: err})
}

func (d *decoder) selection() Selection {
	var s Selection
	for _, key := range d.order {
		if d.bad[key] {
			continue
		}
		switch key {
		case PriceCategory:
			s.setPrice(d.price)
		case StockCategory:
			s.setStock(d.stock)
		default:
			slug, _ := key.AttributeSlug()
			mode, ok := d.modes[slug]
			if !ok {
				mode = DefaultMatchMode
			}
			s.setAttribute(slug, mode, d.terms[slug])
		}
	}
	return s
}
