package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"weather-api/configs"
	"weather-api/internal/domain/model/external"
	"weather-api/pkg/http"
	"weather-api/pkg/log"
)

const (
	currentWeatherPath = "/data/2.5/weather"
	forecastPath       = "/data/2.5/forecast"
	forecastCount      = "40"
)

// weatherGatewayImpl implements the WeatherGateway interface against OpenWeather
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
	timeout    time.Duration
	circuit    *gobreaker.CircuitBreaker
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client and circuit breaker
func NewWeatherGateway(config configs.WeatherConfig, clientOptions http.ClientOptions) WeatherGateway {
	clientOptions.RedactedQueryParams = append(clientOptions.RedactedQueryParams, "appid")
	httpClient := http.NewHttpClient(config.BaseURL, clientOptions)

	failures := config.Breaker.ConsecutiveFailures
	circuit := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: config.Breaker.MaxRequests,
		Interval:    config.Breaker.Interval,
		Timeout:     config.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return failures > 0 && counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &weatherGatewayImpl{
		httpClient: httpClient,
		apiKey:     config.APIKey,
		timeout:    config.Timeout,
		circuit:    circuit,
	}
}

// GetCurrentWeather gets the current conditions of a city
func (w *weatherGatewayImpl) GetCurrentWeather(ctx context.Context, city string) (*external.CurrentWeatherResponse, error) {
	result, err := w.execute(ctx, func(ctx context.Context) (any, error) {
		response := &external.CurrentWeatherResponse{}
		noData, err := w.get(ctx, currentWeatherPath, city, response)
		if err != nil {
			return nil, err
		}
		if noData != nil {
			return &external.CurrentWeatherResponse{Cod: noData.Cod, Message: noData.Message}, nil
		}
		return response, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch current weather for %s: %w", city, err)
	}

	return result.(*external.CurrentWeatherResponse), nil
}

// GetForecast gets the five day / three hour forecast of a city
func (w *weatherGatewayImpl) GetForecast(ctx context.Context, city string) (*external.ForecastResponse, error) {
	result, err := w.execute(ctx, func(ctx context.Context) (any, error) {
		response := &external.ForecastResponse{}
		noData, err := w.get(ctx, forecastPath, city, response, "cnt", forecastCount)
		if err != nil {
			return nil, err
		}
		if noData != nil {
			return &external.ForecastResponse{Cod: noData.Cod, Message: noData.Message}, nil
		}
		return response, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch forecast for %s: %w", city, err)
	}

	return result.(*external.ForecastResponse), nil
}

// execute runs call through the circuit breaker bounded by the per call timeout
func (w *weatherGatewayImpl) execute(ctx context.Context, call func(ctx context.Context) (any, error)) (any, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	return w.circuit.Execute(func() (interface{}, error) {
		return call(ctx)
	})
}

// get requests path for city and decodes the body into response.
// An error status with an OpenWeather error body is not an error: the decoded body is returned instead.
func (w *weatherGatewayImpl) get(ctx context.Context, path, city string, response any, extraParams ...string) (*external.ErrorResponse, error) {
	request := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(path).
		WithQueryParam("q", city).
		WithQueryParam("appid", w.apiKey).
		WithQueryParam("units", "metric").
		WithSuccessResp(response).
		WithErrorResp(&external.ErrorResponse{})

	for i := 0; i+1 < len(extraParams); i += 2 {
		request.WithQueryParam(extraParams[i], extraParams[i+1])
	}

	_, errResp, _, err := request.Execute()
	if err == nil {
		return nil, nil
	}

	var statusErr *http.StatusError
	if errors.As(err, &statusErr) && errResp != nil {
		return errResp.(*external.ErrorResponse), nil
	}

	return nil, err
}
