package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/api"
	"weather-api/internal/domain/gateway/db"
	"weather-api/internal/domain/gateway/queue"
	"weather-api/internal/domain/model"
	"weather-api/internal/domain/model/external"
	"weather-api/pkg/log"
	"weather-api/pkg/msg"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

type weatherUseCase struct {
	cities         []string
	alertQueueName string
	apiGateway     api.WeatherGateway
	dbGateway      db.SummaryGateway
	queueSender    queue.Sender
	now            func() time.Time
}

// NewWeatherUseCase creates the weather use case. A nil queueSender disables alert publishing.
func NewWeatherUseCase(cities []string, alertQueueName string, queueSender queue.Sender, apiGateway api.WeatherGateway, dbGateway db.SummaryGateway) UseCase {
	return &weatherUseCase{
		cities:         append([]string(nil), cities...),
		alertQueueName: alertQueueName,
		queueSender:    queueSender,
		apiGateway:     apiGateway,
		dbGateway:      dbGateway,
		now:            time.Now,
	}
}

// cityWeather is the outcome of one live fetch
type cityWeather struct {
	city     string
	response *external.CurrentWeatherResponse
	err      error
}

// RefreshDailySummaries fetches every tracked city sequentially and upserts today's summaries.
// today is computed once, so a cycle running across midnight files every city under the start date.
func (uc *weatherUseCase) RefreshDailySummaries(ctx context.Context, requestID string) (*model.RefreshResult, error) {
	today := uc.now().Format(dateLayout)
	result := &model.RefreshResult{RequestID: requestID, Date: today}

	log.Info(msg.GetMessage("weather.refresh.start", len(uc.cities)), zap.String("request_id", requestID))

	summaries := make([]entity.DailySummary, 0, len(uc.cities))
	fired := make([]model.AlertDTO, 0)
	for _, city := range uc.cities {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		current, err := uc.apiGateway.GetCurrentWeather(ctx, city)
		if err != nil {
			log.Error(msg.GetMessage("weather.refresh.city-fail", city, err), zap.String("request_id", requestID))
			result.Failed++
			continue
		}

		if !current.HasData() {
			log.Warn(msg.GetMessage("weather.refresh.no-data", city), zap.String("request_id", requestID))
			result.Skipped++
			continue
		}

		summaries = append(summaries, toDailySummary(city, today, current))
		fired = append(fired, evaluateAlerts(city, current.Main, current.Wind)...)
	}

	if len(summaries) > 0 {
		if err := uc.dbGateway.UpsertDailySummaries(ctx, summaries); err != nil {
			log.Error(msg.GetMessage("weather.refresh.store-fail", err), zap.String("request_id", requestID))
			return result, fmt.Errorf("%w: %w", ErrStore, err)
		}
		result.Upserted = len(summaries)
	}

	if uc.queueSender != nil && len(fired) > 0 {
		result.AlertsPublished = uc.publishAlerts(ctx, requestID, today, numberAlerts(fired))
	}

	log.Info(msg.GetMessage("weather.refresh.end", result.Upserted, result.Skipped, result.Failed), zap.String("request_id", requestID))
	return result, nil
}

// publishAlerts sends the fired alerts to the alert queue in one batch and returns how many were accepted.
// Failures are logged only.
func (uc *weatherUseCase) publishAlerts(ctx context.Context, requestID string, date string, alerts []model.AlertDTO) int {
	messages := make([]queue.BatchMessage, len(alerts))
	for i, alert := range alerts {
		id := uuid.New().String()
		messages[i] = queue.BatchMessage{
			MessageID: id,
			Body: model.AlertMessage{
				ID:        id,
				RequestID: requestID,
				City:      alert.City,
				Message:   alert.Message,
				Date:      date,
			},
		}
	}

	result, err := uc.queueSender.SendMessageBatch(ctx, uc.alertQueueName, messages)
	if err != nil {
		log.Error(msg.GetMessage("alert.publish-fail", len(messages), uc.alertQueueName, err), zap.String("request_id", requestID))
		return 0
	}

	log.Info(msg.GetMessage("alert.published", len(result.Successful), uc.alertQueueName, len(result.Failed)), zap.String("request_id", requestID))
	return len(result.Successful)
}

// GetCurrentWeather returns the live snapshot of every tracked city that has data.
// Failing cities are left out; the call fails only when every city failed.
func (uc *weatherUseCase) GetCurrentWeather(ctx context.Context) (map[string]model.CurrentWeatherDTO, error) {
	results, err := uc.fetchAllCurrent(ctx)
	if err != nil {
		return nil, err
	}

	current := make(map[string]model.CurrentWeatherDTO, len(results))
	for _, result := range results {
		if result.err != nil || !result.response.HasData() {
			continue
		}

		main := result.response.Main
		current[result.city] = model.CurrentWeatherDTO{
			AvgTemp:         main.Temp,
			MaxTemp:         main.TempMax,
			MinTemp:         main.TempMin,
			Humidity:        main.Humidity,
			WindSpeed:       result.response.Wind.Speed,
			DominantWeather: result.response.Description(),
		}
	}

	return current, nil
}

// GetAlerts evaluates the threshold rules on live data, numbering alerts in tracked city order
func (uc *weatherUseCase) GetAlerts(ctx context.Context) ([]model.AlertDTO, error) {
	results, err := uc.fetchAllCurrent(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]model.AlertDTO, 0)
	for _, result := range results {
		if result.err != nil || !result.response.HasData() {
			continue
		}
		alerts = append(alerts, evaluateAlerts(result.city, result.response.Main, result.response.Wind)...)
	}

	return numberAlerts(alerts), nil
}

// fetchAllCurrent fetches every tracked city concurrently, keeping the tracked order in the result
func (uc *weatherUseCase) fetchAllCurrent(ctx context.Context) ([]cityWeather, error) {
	results := make([]cityWeather, len(uc.cities))

	var wg sync.WaitGroup
	for i, city := range uc.cities {
		wg.Add(1)
		go func(index int, city string) {
			defer wg.Done()
			response, err := uc.apiGateway.GetCurrentWeather(ctx, city)
			results[index] = cityWeather{city: city, response: response, err: err}
		}(i, city)
	}
	wg.Wait()

	errs := make([]error, 0)
	for _, result := range results {
		if result.err != nil {
			log.Warn(msg.GetMessage("weather.current.city-fail", result.city, result.err))
			errs = append(errs, result.err)
		}
	}

	if len(uc.cities) > 0 && len(errs) == len(uc.cities) {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, errors.Join(errs...))
	}
	return results, nil
}

// GetHistoricalWeather returns every stored daily summary
func (uc *weatherUseCase) GetHistoricalWeather(ctx context.Context) ([]model.DailySummaryDTO, error) {
	summaries, err := uc.dbGateway.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	historical := make([]model.DailySummaryDTO, len(summaries))
	for i, summary := range summaries {
		historical[i] = model.DailySummaryDTO{
			City:            summary.City,
			AvgTemp:         summary.AvgTemp,
			MaxTemp:         summary.MaxTemp,
			MinTemp:         summary.MinTemp,
			Humidity:        summary.Humidity,
			WindSpeed:       summary.WindSpeed,
			DominantWeather: summary.DominantWeather,
			Date:            summary.Date,
		}
	}

	return historical, nil
}

// GetForecast returns one entry per forecast step of city, empty when the provider has no data
func (uc *weatherUseCase) GetForecast(ctx context.Context, city string) ([]model.ForecastDTO, error) {
	response, err := uc.apiGateway.GetForecast(ctx, city)
	if err != nil {
		log.Warn(msg.GetMessage("weather.forecast.fail", city, err))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	forecast := make([]model.ForecastDTO, 0)
	if response == nil {
		return forecast, nil
	}

	for _, entry := range response.List {
		moment := time.Unix(entry.Dt, 0).UTC()
		item := model.ForecastDTO{
			City:            city,
			Date:            moment.Format(dateLayout),
			Time:            moment.Format(timeLayout),
			WindSpeed:       entry.Wind.Speed,
			DominantWeather: entry.Description(),
		}
		if entry.Main != nil {
			item.AvgTemp = entry.Main.Temp
			item.MaxTemp = entry.Main.TempMax
			item.MinTemp = entry.Main.TempMin
			item.Humidity = entry.Main.Humidity
		}
		forecast = append(forecast, item)
	}

	return forecast, nil
}

func toDailySummary(city string, date string, current *external.CurrentWeatherResponse) entity.DailySummary {
	return entity.DailySummary{
		City:            city,
		AvgTemp:         current.Main.Temp,
		MaxTemp:         current.Main.TempMax,
		MinTemp:         current.Main.TempMin,
		Humidity:        current.Main.Humidity,
		WindSpeed:       current.Wind.Speed,
		DominantWeather: current.Description(),
		Date:            date,
	}
}
