package health

import (
	"context"
	"sync"

	"weather-api/internal/domain/gateway/db"
	"weather-api/internal/domain/gateway/lock"
	"weather-api/internal/domain/gateway/queue"
	"weather-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	lockGateway  lock.HealthGateway
	queueGateway queue.HealthGateway
}

// NewHealthUseCase creates the health use case. Nil lock or queue gateways are reported as disabled.
func NewHealthUseCase(dbGateway db.HealthDBGateway, lockGateway lock.HealthGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		lockGateway:  lockGateway,
		queueGateway: queueGateway,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var dbHealth, redisHealth, queueHealth model.ComponentHealthStatus
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		dbHealth = useCase.dbGateway.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		redisHealth = model.DisabledComponent()
		if useCase.lockGateway != nil {
			redisHealth = useCase.lockGateway.Health(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		queueHealth = model.DisabledComponent()
		if useCase.queueGateway != nil {
			queueHealth = useCase.queueGateway.Health(ctx)
		}
	}()
	wg.Wait()

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{dbHealth, redisHealth, queueHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}
	if dbHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Redis:    redisHealth,
		Queue:    queueHealth,
	}
}
