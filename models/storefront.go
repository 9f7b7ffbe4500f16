package models

// StorefrontProductResponse is the thin product shape returned by catalog listings.
type StorefrontProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	StockStatus string  `json:"stock_status"`
}

func (p Product) Response() StorefrontProductResponse {
	return StorefrontProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Price:       p.Price,
		StockStatus: p.StockStatus,
	}
}

// CatalogPage is one server-rendered page of the product catalog.
type CatalogPage struct {
	Products []StorefrontProductResponse `json:"products"`
	Total    int                         `json:"total"`
	// Query is the canonical filter query string the page was rendered for,
	// including the leading '?', or "" when no filter is active.
	Query string `json:"query"`
	// Rejected lists filter parameters that could not be decoded and were ignored.
	Rejected []string `json:"rejected,omitempty"`
}

// FilterOption represents a single filter option
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}
