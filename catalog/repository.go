// Package catalog lists storefront products for a filter selection.
package catalog

import (
	"context"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
)

// Repository is the product source behind the server-rendered catalog page.
type Repository interface {
	// List returns one page of active products matching sel and the total
	// number of matches.
	List(ctx context.Context, sel filters.Selection, page, limit int) ([]models.Product, int, error)
	Metadata(ctx context.Context) (*models.FilterMetadata, error)
}
