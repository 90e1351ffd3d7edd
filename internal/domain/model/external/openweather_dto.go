package external

// CurrentWeatherResponse is the body of GET /data/2.5/weather.
// Main is nil when OpenWeather has no data for the city.
type CurrentWeatherResponse struct {
	Name    string         `json:"name"`
	Dt      int64          `json:"dt"`
	Main    *MainDTO       `json:"main"`
	Wind    WindDTO        `json:"wind"`
	Weather []ConditionDTO `json:"weather"`
	Cod     any            `json:"cod"`
	Message any            `json:"message"`
}

// ForecastResponse is the body of GET /data/2.5/forecast
type ForecastResponse struct {
	Cod     any                `json:"cod"`
	Message any                `json:"message"`
	Cnt     int                `json:"cnt"`
	List    []ForecastEntryDTO `json:"list"`
}

// ForecastEntryDTO is one three hour step of a forecast
type ForecastEntryDTO struct {
	Dt      int64          `json:"dt"`
	Main    *MainDTO       `json:"main"`
	Wind    WindDTO        `json:"wind"`
	Weather []ConditionDTO `json:"weather"`
	DtTxt   string         `json:"dt_txt"`
}

type MainDTO struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type WindDTO struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type ConditionDTO struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ErrorResponse is the body OpenWeather sends with an error status, e.g. {"cod":"404","message":"city not found"}
type ErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// HasData reports whether the payload carries the main block
func (r *CurrentWeatherResponse) HasData() bool {
	return r != nil && r.Main != nil
}

// Description returns the first weather description, or "" when there is none
func (r *CurrentWeatherResponse) Description() string {
	if r == nil {
		return ""
	}
	return firstDescription(r.Weather)
}

// Description returns the first weather description, or "" when there is none
func (e ForecastEntryDTO) Description() string {
	return firstDescription(e.Weather)
}

func firstDescription(conditions []ConditionDTO) string {
	if len(conditions) == 0 {
		return ""
	}
	return conditions[0].Description
}
