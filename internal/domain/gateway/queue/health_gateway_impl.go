package queue

import (
	"context"
	"time"

	"weather-api/internal/domain/model"
)

// QueueHealthGateway reports whether the alert queue can be resolved
type QueueHealthGateway struct {
	pinger    Pinger
	queueName string
	timeout   time.Duration
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway(pinger Pinger, queueName string) *QueueHealthGateway {
	return &QueueHealthGateway{pinger: pinger, queueName: queueName, timeout: 2 * time.Second}
}

func (gateway *QueueHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	if gateway == nil || gateway.pinger == nil {
		return model.DisabledComponent()
	}

	ctx, cancel := context.WithTimeout(ctx, gateway.timeout)
	defer cancel()

	details := map[string]string{"queue": gateway.queueName}
	if err := gateway.pinger.Ping(ctx, gateway.queueName); err != nil {
		details["message"] = err.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	details["message"] = string(model.StatusUp)
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
