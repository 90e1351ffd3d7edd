package api

import (
	"context"

	"weather-api/internal/domain/model/external"
)

// WeatherGateway defines the OpenWeather calls used by the service.
// A payload without data (no main block, empty list) is returned with a nil error.
type WeatherGateway interface {
	// GetCurrentWeather gets the current conditions of a city
	GetCurrentWeather(ctx context.Context, city string) (*external.CurrentWeatherResponse, error)

	// GetForecast gets the five day / three hour forecast of a city
	GetForecast(ctx context.Context, city string) (*external.ForecastResponse, error)
}
