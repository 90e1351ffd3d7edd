package sqlc

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"weather-api/configs"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS daily_summaries (
		id VARCHAR(36) PRIMARY KEY,
		city VARCHAR(100) NOT NULL,
		avg_temp DOUBLE PRECISION,
		max_temp DOUBLE PRECISION,
		min_temp DOUBLE PRECISION,
		humidity DOUBLE PRECISION,
		wind_speed DOUBLE PRECISION,
		dominant_weather VARCHAR(100),
		date VARCHAR(10) NOT NULL,
		created_at VARCHAR(19),
		updated_at VARCHAR(19)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_summaries_city_date ON daily_summaries (city, date)`,
}

// Open opens and pings the configured database. SQLite runs on a single connection in WAL mode.
func Open(ctx context.Context, config configs.DatabaseConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch config.Driver {
	case DriverSQLite:
		db, err = sql.Open(DriverSQLite, config.Path)
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	case DriverPostgres:
		db, err = sql.Open(DriverPostgres, PostgresDSN(config))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", config.Driver, err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", config.Driver, err)
	}

	if config.Driver == DriverSQLite {
		if _, err = db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable sqlite WAL: %w", err)
		}
	}

	return db, nil
}

// Migrate creates the daily_summaries table and its (city, date) unique index when missing
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}

// PostgresDSN builds the lib/pq connection string
func PostgresDSN(config configs.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		config.Host, config.Port, config.Username, config.Password, config.Database, config.Schema)
}
