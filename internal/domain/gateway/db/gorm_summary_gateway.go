package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"weather-api/internal/domain/entity"
)

// GormSummaryGateway is the GORM implementation of SummaryGateway
type GormSummaryGateway struct {
	DB *gorm.DB
}

var _ SummaryGateway = (*GormSummaryGateway)(nil)

func NewGormSummaryGateway(db *gorm.DB) *GormSummaryGateway {
	return &GormSummaryGateway{DB: db}
}

func (gateway *GormSummaryGateway) UpsertDailySummaries(ctx context.Context, summaries []entity.DailySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	now := time.Now().Format(summaryTimeLayout)
	return gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, summary := range summaries {
			var existing []entity.DailySummary
			if err := tx.Where("city = ? AND date = ?", summary.City, summary.Date).Limit(1).Find(&existing).Error; err != nil {
				return fmt.Errorf("find summary %s/%s: %w", summary.City, summary.Date, err)
			}

			if len(existing) == 0 {
				summary.ID = uuid.New().String()
				summary.CreatedAt = now
				summary.UpdatedAt = now
				if err := tx.Create(&summary).Error; err != nil {
					return fmt.Errorf("create summary %s/%s: %w", summary.City, summary.Date, err)
				}
				continue
			}

			// map keeps zero values, struct updates would skip them
			err := tx.Model(&entity.DailySummary{}).Where("id = ?", existing[0].ID).Updates(map[string]any{
				"avg_temp":         summary.AvgTemp,
				"max_temp":         summary.MaxTemp,
				"min_temp":         summary.MinTemp,
				"humidity":         summary.Humidity,
				"wind_speed":       summary.WindSpeed,
				"dominant_weather": summary.DominantWeather,
				"updated_at":       now,
			}).Error
			if err != nil {
				return fmt.Errorf("update summary %s/%s: %w", summary.City, summary.Date, err)
			}
		}
		return nil
	})
}

func (gateway *GormSummaryGateway) FindAll(ctx context.Context) ([]entity.DailySummary, error) {
	summaries := make([]entity.DailySummary, 0)
	err := gateway.DB.WithContext(ctx).Order("date ASC").Order("city ASC").Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
