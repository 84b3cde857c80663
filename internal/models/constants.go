package models

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusInDelivery OrderStatus = "in_delivery"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPreparing, OrderStatusInDelivery,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

const (
	RoleCustomer   = "customer"
	RoleRestaurant = "restaurant_owner"
	RoleCourier    = "delivery_person"
	RoleAdmin      = "admin"
)

// Output formats and destinations understood by the snapshot sinks.
const (
	OutputFormatConsole = "console"
	OutputFormatJSON    = "json"
	OutputFormatCSV     = "csv"
	OutputFormatParquet = "parquet"
	OutputFormatKafka   = "kafka"

	OutputDestinationLocal = "local"
	OutputDestinationS3    = "s3"
)
