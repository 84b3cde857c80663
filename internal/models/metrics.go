package models

import "time"

type GrowthPoint struct {
	Period     string    `json:"period"`
	PeriodDate time.Time `json:"periodDate"`
	NewCount   int       `json:"newCount"`
	Total      int       `json:"total"`
	GrowthRate float64   `json:"growthRate"`
}

type RevenuePoint struct {
	Period     string    `json:"period"`
	PeriodDate time.Time `json:"periodDate"`
	Orders     int       `json:"orders"`
	Revenue    float64   `json:"revenue"`
}

type GrowthResponse struct {
	Interval    Interval       `json:"interval"`
	UserGrowth  []GrowthPoint  `json:"userGrowth"`
	OrderGrowth []GrowthPoint  `json:"orderGrowth"`
	Revenue     []RevenuePoint `json:"revenue"`
}

type RetentionResponse struct {
	RetentionRate float64        `json:"retentionRate"`
	TotalUsers    int            `json:"totalUsers"`
	RetainedUsers int            `json:"retainedUsers"`
	Cohorts       []CohortResult `json:"cohorts"`
}

type CohortResult struct {
	Cohort        string           `json:"cohort"`
	InitialUsers  int              `json:"initialUsers"`
	RetentionData []RetentionPoint `json:"retentionData"`
}

type RetentionPoint struct {
	Period        int     `json:"period"` // offset from the signup period
	ActiveUsers   int     `json:"activeUsers"`
	RetentionRate float64 `json:"retentionRate"`
}

type HeatmapCell struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday, as time.Weekday
	DayName   string `json:"dayName"`
	Hour      int    `json:"hour"`
	Count     int    `json:"count"`
}

type HeatmapResponse struct {
	Cells       []HeatmapCell `json:"cells"`
	TotalOrders int           `json:"totalOrders"`
	MaxCount    int           `json:"maxCount"`
}

type MenuPerformance struct {
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName,omitempty"`
	TotalSold    int     `json:"totalSold"`
	Revenue      float64 `json:"revenue"`
	Contribution float64 `json:"contribution"` // percent of restaurant revenue
}

// PeakWindow is a contiguous run of hours [StartHour, EndHour).
type PeakWindow struct {
	StartHour  int    `json:"startHour"`
	EndHour    int    `json:"endHour"`
	Label      string `json:"label"`
	OrderCount int    `json:"orderCount"`
}

type RestaurantPerformance struct {
	RestaurantID          int64             `json:"restaurantId"`
	RestaurantName        string            `json:"restaurantName,omitempty"`
	TotalOrders           int               `json:"totalOrders"`
	TotalRevenue          float64           `json:"totalRevenue"`
	AverageOrderValue     float64           `json:"averageOrderValue"`
	OrderFrequency        float64           `json:"orderFrequency"`
	CancellationRate      float64           `json:"cancellationRate"`
	CustomerRetentionRate float64           `json:"customerRetentionRate"`
	MenuPerformance       []MenuPerformance `json:"menuPerformance"`
	PeakTimes             []PeakWindow      `json:"peakTimes"`
}

type CourierStat struct {
	DeliveryPersonID    int64   `json:"deliveryPersonId"`
	TotalDeliveries     int     `json:"totalDeliveries"`
	CompletedDeliveries int     `json:"completedDeliveries"`
	AverageDeliveryTime float64 `json:"averageDeliveryTime"`
	OnTimeDeliveryRate  float64 `json:"onTimeDeliveryRate"`
	AverageRating       float64 `json:"averageRating"`
	RatedDeliveries     int     `json:"ratedDeliveries"`
}

type ZoneStat struct {
	Zone                string  `json:"zone"`
	OrderCount          int     `json:"orderCount"`
	AverageDeliveryTime float64 `json:"averageDeliveryTime"`
	AverageDistance     float64 `json:"averageDistance"`
}

// DeliveryMetrics durations are expressed in minutes.
type DeliveryMetrics struct {
	TotalDeliveries     int           `json:"totalDeliveries"`
	CompletedDeliveries int           `json:"completedDeliveries"`
	AverageDeliveryTime float64       `json:"averageDeliveryTime"`
	OnTimeDeliveryRate  float64       `json:"onTimeDeliveryRate"`
	Couriers            []CourierStat `json:"couriers"`
	Zones               []ZoneStat    `json:"zones"`
}

type RestaurantRanking struct {
	RestaurantID   int64   `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName,omitempty"`
	Orders         int     `json:"orders"`
	Revenue        float64 `json:"revenue"`
}

type ProductRanking struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	CategoryID  int64   `json:"categoryId"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}
