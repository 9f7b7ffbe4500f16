package product_controller

import (
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/catalog"
	"go.uber.org/zap"
)

var (
	repo      catalog.Repository
	pageCache cache.PageCache
	logger    = zap.NewNop()
)

// Init wires the catalog source and page cache used by the handlers.
// A nil cache disables caching.
func Init(r catalog.Repository, c cache.PageCache, log *zap.Logger) {
	repo = r
	pageCache = c
	if log != nil {
		logger = log
	}
}
