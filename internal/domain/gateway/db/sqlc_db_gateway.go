package db

import (
	"context"
	"database/sql"
	"time"

	"weather-api/internal/domain/model"
)

type SQLCHealthDBGateway struct {
	DB     *sql.DB
	Driver string
}

var _ HealthDBGateway = (*SQLCHealthDBGateway)(nil)

func NewSQLCHealthDBGateway(db *sql.DB, driver string) *SQLCHealthDBGateway {
	return &SQLCHealthDBGateway{DB: db, Driver: driver}
}

func (gateway *SQLCHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	return pingHealth(ctx, gateway.DB, "sqlc", gateway.Driver)
}

// pingHealth pings db within two seconds and reports the client and driver in use
func pingHealth(ctx context.Context, db *sql.DB, client, driver string) model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	details := map[string]string{
		"client": client,
		"driver": driver,
	}

	if err := db.PingContext(ctx); err != nil {
		details["message"] = err.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	details["message"] = string(model.StatusUp)
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
