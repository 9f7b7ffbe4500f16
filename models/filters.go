package models

// FilterMetadata represents all filter data for the storefront
type FilterMetadata struct {
	Availability []FilterOption  `json:"availability"`
	Attributes   []AttributeData `json:"attributes"`
	PriceRange   *PriceRangeData `json:"priceRange"`
}

// AttributeData lists the terms of one attribute with product counts
type AttributeData struct {
	Slug  string         `json:"slug"`
	Terms []FilterOption `json:"terms"`
}

// PriceRangeData represents the minimum and maximum price in the store
type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
