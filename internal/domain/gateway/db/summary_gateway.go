package db

import (
	"context"

	"weather-api/internal/domain/entity"
)

// SummaryGateway stores one DailySummary per (city, date)
type SummaryGateway interface {
	// UpsertDailySummaries inserts or overwrites every summary inside a single transaction
	UpsertDailySummaries(ctx context.Context, summaries []entity.DailySummary) error

	// FindAll returns every stored summary ordered by date then city
	FindAll(ctx context.Context) ([]entity.DailySummary, error)
}
