package db

import (
	"context"

	"weather-api/internal/domain/model"
)

// HealthDBGateway pings the summary store
type HealthDBGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
