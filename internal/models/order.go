package models

import "time"

// OrderRecord is a pre-joined order row as delivered by the data gateway.
type OrderRecord struct {
	ID                    int64       `json:"id"`
	UserID                int64       `json:"userId"`
	RestaurantID          int64       `json:"restaurantId"`
	RestaurantName        string      `json:"restaurantName,omitempty"`
	DeliveryPersonID      *int64      `json:"deliveryPersonId,omitempty"`
	Status                OrderStatus `json:"status"`
	Subtotal              float64     `json:"subtotal"`
	DeliveryFee           float64     `json:"deliveryFee"`
	Total                 float64     `json:"total"`
	CreatedAt             time.Time   `json:"createdAt"`
	EstimatedDeliveryTime time.Time   `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time  `json:"actualDeliveryTime,omitempty"`
	Items                 []LineItem  `json:"items"`
}

// LineItem is one product line of an order, already resolved to its category.
type LineItem struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName,omitempty"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName,omitempty"`
	Quantity     int     `json:"quantity"`
	LineRevenue  float64 `json:"lineRevenue"`
}

func (o OrderRecord) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

func (o OrderRecord) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}
