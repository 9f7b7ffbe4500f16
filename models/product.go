package models

import (
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductAttribute is one attribute of a product with the term slugs it
// carries, e.g. {"slug": "capacity", "terms": ["128gb"]}.
type ProductAttribute struct {
	Slug  string   `json:"slug" example:"capacity"`
	Terms []string `json:"terms" example:"['128gb']"`
}

type Product struct {
	ID          uuid.UUID                             `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string                                `json:"name" gorm:"not null;index"`
	Description string                                `json:"description" gorm:"not null;default:''"`
	Price       float64                               `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	Status      string                                `json:"status" gorm:"not null;check:status IN ('Active', 'Draft');index"`
	StockStatus string                                `json:"stock_status" gorm:"not null;default:'instock';check:stock_status IN ('instock', 'outofstock', 'onbackorder');index"`
	Attributes  datatypes.JSONSlice[ProductAttribute] `json:"attributes" gorm:"type:jsonb;not null;default:'[]'"`
	Views       int                                   `json:"views" gorm:"default:0"`
	CreatedAt   time.Time                             `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time                             `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// Filterable converts the product into the view the filter widgets match against.
func (p Product) Filterable() filters.Product {
	attrs := make(map[string][]string, len(p.Attributes))
	for _, a := range p.Attributes {
		attrs[a.Slug] = append(attrs[a.Slug], a.Terms...)
	}
	return filters.Product{
		ID:          p.ID.String(),
		Name:        p.Name,
		Price:       p.Price,
		StockStatus: filters.StockStatus(p.StockStatus),
		Attributes:  attrs,
	}
}
