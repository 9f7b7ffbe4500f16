package catalog

import (
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DemoProducts is the five-product catalog used by the seeder and the
// storefront scenarios: one 128gb item, one item at 1.99 and one out of stock.
func DemoProducts() []models.Product {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(i int, name string, price float64, stock string, attrs ...models.ProductAttribute) models.Product {
		return models.Product{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        name,
			Price:       price,
			Status:      "Active",
			StockStatus: stock,
			Attributes:  datatypes.JSONSlice[models.ProductAttribute](append([]models.ProductAttribute{}, attrs...)),
			CreatedAt:   created.Add(time.Duration(i) * time.Hour),
		}
	}
	return []models.Product{
		mk(0, "Hoodie", 42, "instock", models.ProductAttribute{Slug: "color", Terms: []string{"blue"}}),
		mk(1, "Beanie", 18, "instock", models.ProductAttribute{Slug: "color", Terms: []string{"red"}}),
		mk(2, "Album", 15, "outofstock"),
		mk(3, "Single", 1.99, "instock"),
		mk(4, "Memory card", 25, "instock",
			models.ProductAttribute{Slug: "capacity", Terms: []string{"128gb"}},
			models.ProductAttribute{Slug: "color", Terms: []string{"black"}}),
	}
}
