package weather

import (
	"strconv"

	"weather-api/internal/domain/model"
	"weather-api/internal/domain/model/external"
	"weather-api/pkg/msg"
)

const (
	TemperatureThreshold = 35.0
	HumidityThreshold    = 80.0
	WindSpeedThreshold   = 15.0
)

const noAlertsCity = "None"

// evaluateAlerts applies the threshold rules to one snapshot, in temperature, humidity, wind order.
// Ids are left at zero for the caller to number.
func evaluateAlerts(city string, main *external.MainDTO, wind external.WindDTO) []model.AlertDTO {
	if main == nil {
		return nil
	}

	alerts := make([]model.AlertDTO, 0, 3)
	if main.Temp > TemperatureThreshold {
		alerts = append(alerts, model.AlertDTO{City: city, Message: msg.GetMessage("alert.temperature", city, oneDecimal(main.Temp))})
	}
	if main.Humidity > HumidityThreshold {
		alerts = append(alerts, model.AlertDTO{City: city, Message: msg.GetMessage("alert.humidity", city, oneDecimal(main.Humidity))})
	}
	if wind.Speed > WindSpeedThreshold {
		alerts = append(alerts, model.AlertDTO{City: city, Message: msg.GetMessage("alert.wind", city, oneDecimal(wind.Speed))})
	}
	return alerts
}

// numberAlerts assigns ids from 1 in order, or returns the single "no alerts" entry
func numberAlerts(alerts []model.AlertDTO) []model.AlertDTO {
	if len(alerts) == 0 {
		return []model.AlertDTO{{ID: 0, City: noAlertsCity, Message: msg.GetMessage("alert.none")}}
	}

	for i := range alerts {
		alerts[i].ID = i + 1
	}
	return alerts
}

func oneDecimal(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
