package analytics

import (
	"fmt"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

// Explicit record-to-response conversions. Each output field is derived here
// and nowhere else.

func growthPoint(b Bucket, total int, growth float64) models.GrowthPoint {
	return models.GrowthPoint{
		Period:     b.Key,
		PeriodDate: b.Start,
		NewCount:   b.Count,
		Total:      total,
		GrowthRate: growth,
	}
}

func revenuePoint(b Bucket) models.RevenuePoint {
	return models.RevenuePoint{
		Period:     b.Key,
		PeriodDate: b.Start,
		Orders:     b.Count,
		Revenue:    roundMoney(b.Sum),
	}
}

func heatmapCell(day time.Weekday, hour, count int) models.HeatmapCell {
	return models.HeatmapCell{
		DayOfWeek: int(day),
		DayName:   day.String(),
		Hour:      hour,
		Count:     count,
	}
}

func peakWindow(start, end, count int) models.PeakWindow {
	return models.PeakWindow{
		StartHour:  start,
		EndHour:    end,
		Label:      fmt.Sprintf("%02d:00-%02d:00", start, end%24),
		OrderCount: count,
	}
}

func retentionPoint(offset, active, initial int) models.RetentionPoint {
	return models.RetentionPoint{
		Period:        offset,
		ActiveUsers:   active,
		RetentionRate: rate(float64(active), float64(initial)),
	}
}

func zoneStat(zone string, acc *deliveryAcc) models.ZoneStat {
	return models.ZoneStat{
		Zone:                zone,
		OrderCount:          acc.total,
		AverageDeliveryTime: round(acc.averageMinutes(), 2),
		AverageDistance:     round(div(acc.distance, float64(acc.total)), 2),
	}
}

func courierStat(id int64, acc *deliveryAcc) models.CourierStat {
	return models.CourierStat{
		DeliveryPersonID:    id,
		TotalDeliveries:     acc.total,
		CompletedDeliveries: acc.completed,
		AverageDeliveryTime: round(acc.averageMinutes(), 2),
		OnTimeDeliveryRate:  rate(float64(acc.onTime), float64(acc.completed)),
		AverageRating:       round(div(acc.ratingSum, float64(acc.rated)), 2),
		RatedDeliveries:     acc.rated,
	}
}
