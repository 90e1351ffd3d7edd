package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"weather-api/internal/domain/entity"
)

const summaryTimeLayout = "2006-01-02 15:04:05"

const (
	selectSummaryIDQuery = `SELECT id FROM daily_summaries WHERE city = ? AND date = ?`

	insertSummaryQuery = `
		INSERT INTO daily_summaries
			(id, city, avg_temp, max_temp, min_temp, humidity, wind_speed, dominant_weather, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateSummaryQuery = `
		UPDATE daily_summaries
		SET avg_temp = ?, max_temp = ?, min_temp = ?, humidity = ?, wind_speed = ?, dominant_weather = ?, updated_at = ?
		WHERE id = ?`

	findAllSummariesQuery = `
		SELECT id, city, avg_temp, max_temp, min_temp, humidity, wind_speed, dominant_weather, date, created_at, updated_at
		FROM daily_summaries
		ORDER BY date ASC, city ASC`
)

// SQLCSummaryGateway is the database/sql implementation of SummaryGateway.
// Queries are written with ? placeholders and rebound to $n for postgres.
type SQLCSummaryGateway struct {
	DB     *sql.DB
	Driver string
}

var _ SummaryGateway = (*SQLCSummaryGateway)(nil)

func NewSQLCSummaryGateway(db *sql.DB, driver string) *SQLCSummaryGateway {
	return &SQLCSummaryGateway{DB: db, Driver: driver}
}

// UpsertDailySummaries looks up each summary by city and date, inserting it with a new id when absent
// and overwriting every aggregate otherwise. Everything commits at once.
func (gateway *SQLCSummaryGateway) UpsertDailySummaries(ctx context.Context, summaries []entity.DailySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	tx, err := gateway.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().Format(summaryTimeLayout)
	for _, summary := range summaries {
		if err := gateway.upsertInTx(ctx, tx, summary, now); err != nil {
			return fmt.Errorf("upsert summary %s/%s: %w", summary.City, summary.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (gateway *SQLCSummaryGateway) upsertInTx(ctx context.Context, tx *sql.Tx, summary entity.DailySummary, now string) error {
	var existingID string
	err := tx.QueryRowContext(ctx, gateway.rebind(selectSummaryIDQuery), summary.City, summary.Date).Scan(&existingID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if existingID != "" {
		_, err = tx.ExecContext(ctx, gateway.rebind(updateSummaryQuery),
			summary.AvgTemp, summary.MaxTemp, summary.MinTemp, summary.Humidity, summary.WindSpeed,
			summary.DominantWeather, now, existingID)
		return err
	}

	_, err = tx.ExecContext(ctx, gateway.rebind(insertSummaryQuery),
		uuid.New().String(), summary.City, summary.AvgTemp, summary.MaxTemp, summary.MinTemp, summary.Humidity,
		summary.WindSpeed, summary.DominantWeather, summary.Date, now, now)
	return err
}

// FindAll returns every stored summary ordered by date then city
func (gateway *SQLCSummaryGateway) FindAll(ctx context.Context) ([]entity.DailySummary, error) {
	rows, err := gateway.DB.QueryContext(ctx, findAllSummariesQuery)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]entity.DailySummary, 0)
	for rows.Next() {
		var summary entity.DailySummary
		if err := rows.Scan(&summary.ID, &summary.City, &summary.AvgTemp, &summary.MaxTemp, &summary.MinTemp,
			&summary.Humidity, &summary.WindSpeed, &summary.DominantWeather, &summary.Date,
			&summary.CreatedAt, &summary.UpdatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// rebind turns ? placeholders into $1..$n for postgres
func (gateway *SQLCSummaryGateway) rebind(query string) string {
	if gateway.Driver != "postgres" {
		return query
	}

	var builder strings.Builder
	builder.Grow(len(query) + 8)
	position := 0
	for _, char := range query {
		if char == '?' {
			position++
			builder.WriteString("$" + strconv.Itoa(position))
			continue
		}
		builder.WriteRune(char)
	}
	return builder.String()
}
