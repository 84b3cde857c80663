package models

import "time"

// DeliveryRecord is a delivery joined with the order fields the metrics need.
// CompletedAt is the order's actual delivery time; nil while the delivery is in flight.
type DeliveryRecord struct {
	ID                    int64      `json:"id"`
	OrderID               int64      `json:"orderId"`
	RestaurantID          int64      `json:"restaurantId"`
	DeliveryPersonID      int64      `json:"deliveryPersonId"`
	Zone                  string     `json:"zone"`
	Distance              float64    `json:"distance"` // km
	StartedAt             time.Time  `json:"startedAt"`
	CompletedAt           *time.Time `json:"completedAt,omitempty"`
	EstimatedDeliveryTime time.Time  `json:"estimatedDeliveryTime"`
	Rating                *float64   `json:"rating,omitempty"`
}

func (d DeliveryRecord) IsCompleted() bool {
	return d.CompletedAt != nil
}
