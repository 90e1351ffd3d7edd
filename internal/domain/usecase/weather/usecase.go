package weather

import (
	"context"
	"errors"

	"weather-api/internal/domain/model"
)

var (
	// ErrUpstream marks failures of the weather provider
	ErrUpstream = errors.New("weather provider unavailable")
	// ErrStore marks failures of the summary store
	ErrStore = errors.New("summary store unavailable")
)

type UseCase interface {
	// RefreshDailySummaries fetches every tracked city and upserts today's summaries in one batch.
	// A failing city is logged and skipped, it never aborts the cycle.
	RefreshDailySummaries(ctx context.Context, requestID string) (*model.RefreshResult, error)

	// GetCurrentWeather returns the live snapshot of every tracked city that has data, keyed by city
	GetCurrentWeather(ctx context.Context) (map[string]model.CurrentWeatherDTO, error)

	// GetHistoricalWeather returns every stored daily summary
	GetHistoricalWeather(ctx context.Context) ([]model.DailySummaryDTO, error)

	// GetAlerts evaluates the threshold rules on live data; the result is never empty
	GetAlerts(ctx context.Context) ([]model.AlertDTO, error)

	// GetForecast returns one entry per forecast step of city
	GetForecast(ctx context.Context, city string) ([]model.ForecastDTO, error)
}
