package config

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var CatalogGorm *gorm.DB

func InitDB(s *Settings, log *zap.Logger) error {
	gormLogger := logger.Default.LogMode(logger.Info)
	if s.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}
	if s.CatalogDBURL == "" {
		log.Warn("⚠️ CMS_DB_URL not set, using local GORM default")
	}

	db, err := gorm.Open(postgres.Open(s.DSN()), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	CatalogGorm = db
	log.Info("✅ Catalog database connected (GORM)")
	return nil
}

func CloseDB(log *zap.Logger) {
	if CatalogGorm == nil {
		return
	}
	if sqlDB, _ := CatalogGorm.DB(); sqlDB != nil {
		sqlDB.Close()
		log.Info("✅ Catalog database connection closed (GORM)")
	}
}
