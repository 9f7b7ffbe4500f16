// @title Modeva Storefront Filters API
// @version 1.0
// @description Server-rendered catalog pages driven by storefront filter widgets
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/config"
	store_filter "github.com/Modeva-Ecommerce/modeva-storefront-filters/controllers/ecommerce/filter_controller"
	store_product "github.com/Modeva-Ecommerce/modeva-storefront-filters/controllers/ecommerce/product_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/logging"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/routes/ecommerce_routes"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/widget"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	logger := logging.NewForEnv(settings.AppEnv, settings.LogLevel)
	defer logger.Sync()

	// Fail fast on a bad widget configuration.
	widgetCfg, err := widget.ConfigFromSettings(settings)
	if err != nil {
		logger.Fatal("❌ Invalid widget configuration", zap.Error(err))
	}
	logger.Info("✅ Widget defaults",
		zap.Stringer("apply_mode", widgetCfg.ApplyMode),
		zap.Stringer("render_context", widgetCfg.RenderContext))

	// Connect to DB
	var repo catalog.Repository
	if err := config.InitDB(settings, logger); err != nil {
		if settings.IsProduction() {
			logger.Fatal("❌ Failed to connect to catalog database", zap.Error(err))
		}
		logger.Warn("⚠️ Catalog database unavailable, serving the demo catalog", zap.Error(err))
		repo = catalog.NewMemoryRepository(catalog.DemoProducts())
	} else {
		defer config.CloseDB(logger)
		repo = catalog.NewGormRepository(config.CatalogGorm)
	}

	// Redis connection
	var pageCache cache.PageCache
	var limiterClient redis.Cmdable
	ctx, cancel := config.WithTimeout()
	if err := config.ConnectRedis(ctx, settings, logger); err != nil {
		logger.Warn("⚠️ Redis unavailable, using in-process page cache", zap.Error(err))
		pageCache = cache.NewMemoryPageCache(settings.PageCacheTTL)
	} else {
		pageCache = cache.NewRedisPageCache(config.RedisClient, settings.PageCacheTTL, logger)
		limiterClient = config.RedisClient
	}
	cancel()

	store_product.Init(repo, pageCache, logger)
	store_filter.Init(repo, logger)

	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsCfg := cors.Config{
		AllowOrigins:     settings.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(limiterClient, 300, time.Minute))
	ecommerce_routes.SetupStorefrontRoutes(api)

	addr := ":" + settings.Port
	fmt.Printf("🚀 Server is running on http://localhost%s\n", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("❌ Server stopped", zap.Error(err))
	}
}
