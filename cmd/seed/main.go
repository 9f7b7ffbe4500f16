package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/catalog"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/config"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/logging"
	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
	"go.uber.org/zap"
)

// main inserts the demo catalog used by the storefront filter scenarios.
// Usage: go run ./cmd/seed
// Products already present (matched by name) are left untouched.
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("MODEVA STOREFRONT - Demo Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	logger := logging.NewForEnv(settings.AppEnv, settings.LogLevel)
	defer logger.Sync()

	if err := config.InitDB(settings, logger); err != nil {
		logger.Fatal("❌ Failed to connect to catalog database", zap.Error(err))
	}
	defer config.CloseDB(logger)

	if err := config.CatalogGorm.AutoMigrate(&models.Product{}); err != nil {
		logger.Fatal("❌ Failed to migrate products table", zap.Error(err))
	}
	log.Println("✓ Products table ready")

	created := 0
	for _, p := range catalog.DemoProducts() {
		var count int64
		if err := config.CatalogGorm.Model(&models.Product{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			logger.Fatal("❌ Database error", zap.Error(err))
		}
		if count > 0 {
			log.Printf("• %s already exists, skipping", p.Name)
			continue
		}
		if err := config.CatalogGorm.Create(&p).Error; err != nil {
			logger.Fatal("❌ Failed to create product", zap.String("name", p.Name), zap.Error(err))
		}
		log.Printf("✓ Created %s (%s, %.2f)", p.Name, p.StockStatus, p.Price)
		created++
	}

	// Cached catalog pages no longer match the table.
	ctx, cancel := config.WithTimeout()
	defer cancel()
	if err := config.ConnectRedis(ctx, settings, logger); err != nil {
		logger.Warn("⚠️ Redis unavailable, page cache not invalidated", zap.Error(err))
	} else {
		cache.NewRedisPageCache(config.RedisClient, settings.PageCacheTTL, logger).Invalidate(context.Background())
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("✅ Seeded %d product(s)\n", created)
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("Next steps:")
	fmt.Println("1. Start the storefront server: go run .")
	fmt.Println("2. Browse GET /api/v1/store/products?max_price=1.99")
}
