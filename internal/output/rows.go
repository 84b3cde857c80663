package output

import (
	"strconv"
)

// Row-oriented sinks (CSV, Parquet) write a snapshot as several flat tables.
// The parquet tags drive the Parquet schema; header and record drive CSV.

type row interface {
	header() []string
	record() []string
}

type SeriesRow struct {
	SnapshotID  string  `parquet:"name=snapshot_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Metric      string  `parquet:"name=metric, type=BYTE_ARRAY, convertedtype=UTF8"`
	Period      string  `parquet:"name=period, type=BYTE_ARRAY, convertedtype=UTF8"`
	PeriodStart int64   `parquet:"name=period_start, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Count       int64   `parquet:"name=count, type=INT64"`
	Total       int64   `parquet:"name=total, type=INT64"`
	Revenue     float64 `parquet:"name=revenue, type=DOUBLE"`
	GrowthRate  float64 `parquet:"name=growth_rate, type=DOUBLE"`
}

func (SeriesRow) header() []string {
	return []string{"snapshot_id", "metric", "period", "period_start", "count", "total", "revenue", "growth_rate"}
}

func (r SeriesRow) record() []string {
	return []string{r.SnapshotID, r.Metric, r.Period, itoa(r.PeriodStart), itoa(r.Count), itoa(r.Total), ftoa(r.Revenue), ftoa(r.GrowthRate)}
}

type RetentionRow struct {
	SnapshotID    string  `parquet:"name=snapshot_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Cohort        string  `parquet:"name=cohort, type=BYTE_ARRAY, convertedtype=UTF8"`
	InitialUsers  int64   `parquet:"name=initial_users, type=INT64"`
	Offset        int64   `parquet:"name=period_offset, type=INT64"`
	ActiveUsers   int64   `parquet:"name=active_users, type=INT64"`
	RetentionRate float64 `parquet:"name=retention_rate, type=DOUBLE"`
}

func (RetentionRow) header() []string {
	return []string{"snapshot_id", "cohort", "initial_users", "period_offset", "active_users", "retention_rate"}
}

func (r RetentionRow) record() []string {
	return []string{r.SnapshotID, r.Cohort, itoa(r.InitialUsers), itoa(r.Offset), itoa(r.ActiveUsers), ftoa(r.RetentionRate)}
}

type HeatmapRow struct {
	SnapshotID string `parquet:"name=snapshot_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	DayOfWeek  int32  `parquet:"name=day_of_week, type=INT32"`
	DayName    string `parquet:"name=day_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Hour       int32  `parquet:"name=hour, type=INT32"`
	Count      int64  `parquet:"name=count, type=INT64"`
}

func (HeatmapRow) header() []string {
	return []string{"snapshot_id", "day_of_week", "day_name", "hour", "count"}
}

func (r HeatmapRow) record() []string {
	return []string{r.SnapshotID, itoa(int64(r.DayOfWeek)), r.DayName, itoa(int64(r.Hour)), itoa(r.Count)}
}

type RestaurantRow struct {
	SnapshotID            string  `parquet:"name=snapshot_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	RestaurantID          int64   `parquet:"name=restaurant_id, type=INT64"`
	RestaurantName        string  `parquet:"name=restaurant_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalOrders           int64   `parquet:"name=total_orders, type=INT64"`
	TotalRevenue          float64 `parquet:"name=total_revenue, type=DOUBLE"`
	AverageOrderValue     float64 `parquet:"name=average_order_value, type=DOUBLE"`
	OrderFrequency        float64 `parquet:"name=order_frequency, type=DOUBLE"`
	CancellationRate      float64 `parquet:"name=cancellation_rate, type=DOUBLE"`
	CustomerRetentionRate float64 `parquet:"name=customer_retention_rate, type=DOUBLE"`
	PeakTimes             string  `parquet:"name=peak_times, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func (RestaurantRow) header() []string {
	return []string{"snapshot_id", "restaurant_id", "restaurant_name", "total_orders", "total_revenue",
		"average_order_value", "order_frequency", "cancellation_rate", "customer_retention_rate", "peak_times"}
}

func (r RestaurantRow) record() []string {
	return []string{r.SnapshotID, itoa(r.RestaurantID), r.RestaurantName, itoa(r.TotalOrders), ftoa(r.TotalRevenue),
		ftoa(r.AverageOrderValue), ftoa(r.OrderFrequency), ftoa(r.CancellationRate), ftoa(r.CustomerRetentionRate), r.PeakTimes}
}

// DeliveryRow carries either a courier or a zone aggregate; Scope says which.
type DeliveryRow struct {
	SnapshotID          string  `parquet:"name=snapshot_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Scope               string  `parquet:"name=scope, type=BYTE_ARRAY, convertedtype=UTF8"`
	Key                 string  `parquet:"name=key, type=BYTE_ARRAY, convertedtype=UTF8"`
	Deliveries          int64   `parquet:"name=deliveries, type=INT64"`
	AverageDeliveryTime float64 `parquet:"name=average_delivery_time, type=DOUBLE"`
	OnTimeDeliveryRate  float64 `parquet:"name=on_time_delivery_rate, type=DOUBLE"`
	AverageRating       float64 `parquet:"name=average_rating, type=DOUBLE"`
	AverageDistance     float64 `parquet:"name=average_distance, type=DOUBLE"`
}

func (DeliveryRow) header() []string {
	return []string{"snapshot_id", "scope", "key", "deliveries", "average_delivery_time",
		"on_time_delivery_rate", "average_rating", "average_distance"}
}

func (r DeliveryRow) record() []string {
	return []string{r.SnapshotID, r.Scope, r.Key, itoa(r.Deliveries), ftoa(r.AverageDeliveryTime),
		ftoa(r.OnTimeDeliveryRate), ftoa(r.AverageRating), ftoa(r.AverageDistance)}
}

type RankingRow struct {
	SnapshotID string  `parquet:"name=snapshot_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Kind       string  `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8"`
	Rank       int32   `parquet:"name=rank, type=INT32"`
	ID         int64   `parquet:"name=id, type=INT64"`
	Name       string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Volume     int64   `parquet:"name=volume, type=INT64"`
	Revenue    float64 `parquet:"name=revenue, type=DOUBLE"`
}

func (RankingRow) header() []string {
	return []string{"snapshot_id", "kind", "rank", "id", "name", "volume", "revenue"}
}

func (r RankingRow) record() []string {
	return []string{r.SnapshotID, r.Kind, itoa(int64(r.Rank)), itoa(r.ID), r.Name, itoa(r.Volume), ftoa(r.Revenue)}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
