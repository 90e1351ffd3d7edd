package controller

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/usecase/weather"
)

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase) *WeatherController {
	return &WeatherController{api: api, useCase: useCase}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather/current", controller.GetCurrentWeather)
	controller.api.GET("/weather/historical", controller.GetHistoricalWeather)
	controller.api.GET("/weather/alerts", controller.GetAlerts)
	controller.api.GET("/weather/forecast/:city", controller.GetForecast)
}

// GetCurrentWeather godoc
// @Summary Get current weather
// @Description Live weather of every tracked city, keyed by city. Cities without data are omitted.
// @Tags weather
// @Produce json
// @Success 200 {object} map[string]model.CurrentWeatherDTO "Current weather by city"
// @Failure 502 {object} model.ErrorResponse "Weather provider unavailable"
// @Router /weather/current [get]
func (controller *WeatherController) GetCurrentWeather(c echo.Context) error {
	current, err := controller.useCase.GetCurrentWeather(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, current)
}

// GetHistoricalWeather godoc
// @Summary Get historical weather
// @Description Every stored daily summary
// @Tags weather
// @Produce json
// @Success 200 {array} model.DailySummaryDTO "Daily summaries"
// @Failure 500 {object} model.ErrorResponse "Summary store unavailable"
// @Router /weather/historical [get]
func (controller *WeatherController) GetHistoricalWeather(c echo.Context) error {
	historical, err := controller.useCase.GetHistoricalWeather(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, historical)
}

// GetAlerts godoc
// @Summary Get weather alerts
// @Description Threshold alerts over live data. When nothing fires a single entry with id 0 is returned.
// @Tags weather
// @Produce json
// @Success 200 {array} model.AlertDTO "Alerts"
// @Failure 502 {object} model.ErrorResponse "Weather provider unavailable"
// @Router /weather/alerts [get]
func (controller *WeatherController) GetAlerts(c echo.Context) error {
	alerts, err := controller.useCase.GetAlerts(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// GetForecast godoc
// @Summary Get forecast
// @Description Five day / three hour forecast of a city, date and time in UTC
// @Tags weather
// @Produce json
// @Param city path string true "City name"
// @Success 200 {array} model.ForecastDTO "Forecast steps"
// @Failure 502 {object} model.ErrorResponse "Weather provider unavailable"
// @Router /weather/forecast/{city} [get]
func (controller *WeatherController) GetForecast(c echo.Context) error {
	city := c.Param("city")
	if unescaped, err := url.PathUnescape(city); err == nil {
		city = unescaped
	}

	forecast, err := controller.useCase.GetForecast(c.Request().Context(), city)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, forecast)
}

// errorJSON maps use case errors to a status code: 502 for provider failures, 500 otherwise
func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	if errors.Is(err, weather.ErrUpstream) {
		status = http.StatusBadGateway
	}

	c.Set("error", err)
	return c.JSON(status, model.ErrorResponse{Error: err.Error()})
}
