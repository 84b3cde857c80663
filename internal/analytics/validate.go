package analytics

import (
	"math"

	"github.com/chrisdamba/foodash/internal/models"
)

func badFloat(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func checkOrders(orders []models.OrderRecord) error {
	for _, o := range orders {
		switch {
		case o.CreatedAt.IsZero():
			return &MalformedRecordError{Kind: "order", ID: o.ID, Reason: "missing createdAt"}
		case badFloat(o.Total) || o.Total < 0:
			return &MalformedRecordError{Kind: "order", ID: o.ID, Reason: "total is negative or not a number"}
		case !o.Status.Valid():
			return &MalformedRecordError{Kind: "order", ID: o.ID, Reason: "unknown status " + string(o.Status)}
		}
		for _, item := range o.Items {
			if item.Quantity < 0 || badFloat(item.LineRevenue) || item.LineRevenue < 0 {
				return &MalformedRecordError{Kind: "order", ID: o.ID, Reason: "line item with negative quantity or revenue"}
			}
		}
	}
	return nil
}

func checkUsers(users []models.UserRecord) error {
	for _, u := range users {
		if u.CreatedAt.IsZero() {
			return &MalformedRecordError{Kind: "user", ID: u.ID, Reason: "missing createdAt"}
		}
	}
	return nil
}

func checkDeliveries(deliveries []models.DeliveryRecord) error {
	for _, d := range deliveries {
		switch {
		case d.StartedAt.IsZero():
			return &MalformedRecordError{Kind: "delivery", ID: d.ID, Reason: "missing startedAt"}
		case d.CompletedAt != nil && d.CompletedAt.Before(d.StartedAt):
			return &MalformedRecordError{Kind: "delivery", ID: d.ID, Reason: "completed before it started"}
		case badFloat(d.Distance) || d.Distance < 0:
			return &MalformedRecordError{Kind: "delivery", ID: d.ID, Reason: "distance is negative or not a number"}
		case d.Rating != nil && badFloat(*d.Rating):
			return &MalformedRecordError{Kind: "delivery", ID: d.ID, Reason: "rating is not a number"}
		}
	}
	return nil
}
