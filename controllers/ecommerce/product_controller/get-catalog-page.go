package product_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/config"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCatalogPage godoc
// @Summary Get a server-rendered catalog page
// @Description Lists active products for the filter query in the URL. Malformed filter parameters are ignored and reported in data.rejected; the remaining filters still apply.
// @Tags Storefront - Products
// @Produce json
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param filter_stock_status query string false "Comma separated stock statuses" Enums(instock, outofstock, onbackorder)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.ApiResponse{data=models.CatalogPage}
// @Failure 500 {object} models.ApiResponse
// @Router /store/products [get]
func GetCatalogPage(c *gin.Context) {
	page, limit := parsePagination(c)

	sel, decodeErr := filters.DecodeLenient(c.Request.URL.RawQuery)
	rejected := filters.MalformedParams(decodeErr)
	if decodeErr != nil {
		logger.Warn("⚠️ ignoring malformed filter params",
			zap.Strings("params", rejected), zap.Error(decodeErr))
	}

	query := ""
	if encoded := filters.Encode(sel); encoded != "" {
		query = "?" + encoded
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	key := cache.PageKey(query, page, limit)
	if pageCache != nil {
		if cached, ok := pageCache.Get(ctx, key); ok {
			out := *cached
			out.Rejected = rejected
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", out, &models.Pagination{
				Page: page, Limit: limit, Total: out.Total, TotalPages: totalPages(out.Total, limit),
			}))
			return
		}
	}

	products, total, err := repo.List(ctx, sel, page, limit)
	if err != nil {
		logger.Error("❌ catalog query failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	result := models.CatalogPage{
		Products: make([]models.StorefrontProductResponse, len(products)),
		Total:    total,
		Query:    query,
	}
	for i, p := range products {
		result.Products[i] = p.Response()
	}
	if pageCache != nil {
		stored := result
		pageCache.Set(ctx, key, &stored)
		c.Header("X-Cache", "MISS")
	}

	result.Rejected = rejected
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", result, &models.Pagination{
		Page: page, Limit: limit, Total: total, TotalPages: totalPages(total, limit),
	}))
}
