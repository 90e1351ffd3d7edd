package main

import (
	"context"

	"weather-api/configs"
	"weather-api/internal/domain/gateway/db"
	"weather-api/internal/domain/gateway/lock"
	"weather-api/internal/domain/gateway/queue"
	"weather-api/internal/infra/aws"
	"weather-api/internal/infra/database/gorm"
	"weather-api/internal/infra/database/sqlc"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
	"weather-api/pkg/redis"
)

// initSummaryStore opens and migrates the configured store, exiting on failure
func initSummaryStore(ctx context.Context, config configs.DatabaseConfig) (db.SummaryGateway, db.HealthDBGateway, func()) {
	if config.Client == "gorm" {
		gormDB, err := gorm.Open(ctx, config)
		if err != nil {
			log.Fatal(msg.GetMessage("db.open-fail", config.Client, err))
		}
		if err := gorm.Migrate(ctx, gormDB); err != nil {
			log.Fatal(msg.GetMessage("db.migrate-fail", config.Client, err))
		}

		closeDB := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return db.NewGormSummaryGateway(gormDB), db.NewGormHealthDBGateway(gormDB), closeDB
	}

	sqlDB, err := sqlc.Open(ctx, config)
	if err != nil {
		log.Fatal(msg.GetMessage("db.open-fail", config.Client, err))
	}
	if err := sqlc.Migrate(ctx, sqlDB); err != nil {
		log.Fatal(msg.GetMessage("db.migrate-fail", config.Client, err))
	}

	closeDB := func() { _ = sqlDB.Close() }
	return db.NewSQLCSummaryGateway(sqlDB, config.Driver), db.NewSQLCHealthDBGateway(sqlDB, config.Driver), closeDB
}

// initRedis creates the Redis client when enabled. Both results are nil otherwise.
func initRedis(config configs.RedisConfig) (*redis.Client, lock.HealthGateway) {
	if !config.Enabled {
		return nil, nil
	}

	client, err := redis.NewClient(redis.NewRedisConfig().
		WithHost(config.Host).
		WithPort(config.Port).
		WithPassword(config.Password).
		WithDatabase(config.Database))
	if err != nil {
		log.Fatalf("Fail to create Redis client: %v", err)
	}

	return client, lock.NewRedisHealthGateway(client)
}

// initAlertQueue creates the SQS sender when alert publishing is enabled. Both results are nil otherwise.
func initAlertQueue(ctx context.Context, config *configs.Config) (queue.Sender, queue.HealthGateway) {
	if !config.Alerts.PublishEnabled {
		return nil, nil
	}

	awsConfig, err := aws.LoadConfig(ctx, config.Cloud)
	if err != nil {
		log.Fatalf("Fail to load AWS configuration: %v", err)
	}

	adapter := aws.NewSQSSenderAdapter(aws.NewSqsClient(awsConfig, config.Cloud.AWSEndpoint))
	return adapter, queue.NewQueueHealthGateway(adapter, config.Alerts.QueueName)
}
