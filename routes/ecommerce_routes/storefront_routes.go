package ecommerce_routes

import (
	store_filter "github.com/Modeva-Ecommerce/modeva-storefront-filters/controllers/ecommerce/filter_controller"
	store_product "github.com/Modeva-Ecommerce/modeva-storefront-filters/controllers/ecommerce/product_controller"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	store.GET("/products", store_product.GetCatalogPage) // Server-rendered catalog page
	store.GET("/filters/metadata", store_filter.GetFilterMetadata)
}
