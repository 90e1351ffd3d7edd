package model

// CurrentWeatherDTO is the live snapshot of one city, keyed by city name in the response
type CurrentWeatherDTO struct {
	AvgTemp         float64 `json:"avg_temp" example:"31.2"`
	MaxTemp         float64 `json:"max_temp" example:"32"`
	MinTemp         float64 `json:"min_temp" example:"30.1"`
	Humidity        float64 `json:"humidity" example:"62"`
	WindSpeed       float64 `json:"wind_speed" example:"4.1"`
	DominantWeather string  `json:"dominant_weather" example:"haze"`
}

// DailySummaryDTO is a stored daily summary
type DailySummaryDTO struct {
	City            string  `json:"city" example:"Delhi"`
	AvgTemp         float64 `json:"avg_temp"`
	MaxTemp         float64 `json:"max_temp"`
	MinTemp         float64 `json:"min_temp"`
	Humidity        float64 `json:"humidity"`
	WindSpeed       float64 `json:"wind_speed"`
	DominantWeather string  `json:"dominant_weather"`
	Date            string  `json:"date" example:"2024-05-01"`
}

// ForecastDTO is one forecast step, Date and Time in UTC
type ForecastDTO struct {
	City            string  `json:"city" example:"Delhi"`
	Date            string  `json:"date" example:"2024-05-01"`
	Time            string  `json:"time" example:"15:00:00"`
	AvgTemp         float64 `json:"avg_temp"`
	MaxTemp         float64 `json:"max_temp"`
	MinTemp         float64 `json:"min_temp"`
	Humidity        float64 `json:"humidity"`
	WindSpeed       float64 `json:"wind_speed"`
	DominantWeather string  `json:"dominant_weather"`
}

// AlertDTO is a fired threshold rule. Id 0 is reserved for the "no alerts" entry.
type AlertDTO struct {
	ID      int    `json:"id" example:"1"`
	City    string `json:"city" example:"Delhi"`
	Message string `json:"message" example:"Temperature exceeded 35°C in Delhi. Current: 36.0°C"`
}

// AlertMessage is the queue payload published for every alert fired during a refresh cycle
type AlertMessage struct {
	ID        string `json:"id"`
	RequestID string `json:"requestId"`
	City      string `json:"city"`
	Message   string `json:"message"`
	Date      string `json:"date"`
}

// RefreshResult summarizes one refresh cycle
type RefreshResult struct {
	RequestID       string `json:"requestId"`
	Date            string `json:"date"`
	Upserted        int    `json:"upserted"`
	Skipped         int    `json:"skipped"`
	Failed          int    `json:"failed"`
	AlertsPublished int    `json:"alertsPublished"`
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"weather provider unavailable"`
}
