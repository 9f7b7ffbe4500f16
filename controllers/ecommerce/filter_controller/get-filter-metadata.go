package filter_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/config"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	repo   catalog.Repository
	logger = zap.NewNop()
)

func Init(r catalog.Repository, log *zap.Logger) {
	repo = r
	if log != nil {
		logger = log
	}
}

// GetFilterMetadata godoc
// @Summary Get all filter metadata
// @Description Returns availability counts, attribute terms, and price range for storefront filter widgets
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /store/filters/metadata [get]
func GetFilterMetadata(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	metadata, err := repo.Metadata(ctx)
	if err != nil {
		logger.Error("❌ filter metadata query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", metadata))
}
