package entity

// DailySummary is the persisted weather aggregate of one city for one calendar day.
// (City, Date) is unique; later refreshes of the same day overwrite the row in place.
type DailySummary struct {
	ID              string  `json:"id" gorm:"column:id;type:varchar(36);primaryKey"`
	City            string  `json:"city" gorm:"column:city;type:varchar(100);not null;uniqueIndex:idx_daily_summaries_city_date,priority:1"`
	AvgTemp         float64 `json:"avgTemp" gorm:"column:avg_temp"`
	MaxTemp         float64 `json:"maxTemp" gorm:"column:max_temp"`
	MinTemp         float64 `json:"minTemp" gorm:"column:min_temp"`
	Humidity        float64 `json:"humidity" gorm:"column:humidity"`
	WindSpeed       float64 `json:"windSpeed" gorm:"column:wind_speed"`
	DominantWeather string  `json:"dominantWeather" gorm:"column:dominant_weather;type:varchar(100)"`
	Date            string  `json:"date" gorm:"column:date;type:varchar(10);not null;uniqueIndex:idx_daily_summaries_city_date,priority:2"`
	CreatedAt       string  `json:"createdDate" gorm:"column:created_at;type:varchar(19)"`
	UpdatedAt       string  `json:"updatedDate" gorm:"column:updated_at;type:varchar(19)"`
}

// TableName overrides the gorm table name
func (DailySummary) TableName() string {
	return "daily_summaries"
}
