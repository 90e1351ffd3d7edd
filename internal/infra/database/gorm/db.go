package gorm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weather-api/configs"
	"weather-api/internal/domain/entity"
	"weather-api/internal/infra/database/sqlc"
	"weather-api/pkg/log"
)

// Open connects GORM to the configured PostgreSQL database
func Open(ctx context.Context, config configs.DatabaseConfig) (*gorm.DB, error) {
	if config.Driver != sqlc.DriverPostgres {
		return nil, fmt.Errorf("gorm client supports the postgres driver only, got %q", config.Driver)
	}

	db, err := gorm.Open(postgres.Open(sqlc.PostgresDSN(config)), &gorm.Config{
		Logger: logger.New(gormWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping gorm database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the daily_summaries table
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&entity.DailySummary{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// gormWriter sends gorm logs to pkg/log
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}
