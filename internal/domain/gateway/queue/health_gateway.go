package queue

import (
	"context"

	"weather-api/internal/domain/model"
)

// HealthGateway reports the reachability of the alert queue
type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
