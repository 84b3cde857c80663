package models

// Catalog entities exist only so that seeded databases can be joined into
// OrderRecord and DeliveryRecord. The analytics never read them directly.

type Restaurant struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	OwnerID int64   `json:"ownerId"`
	Zone    string  `json:"zone"`
	Cuisine string  `json:"cuisine"`
	Rating  float64 `json:"rating"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurantId"`
	CategoryID   int64   `json:"categoryId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
}

type Courier struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"userId"`
	Name   string  `json:"name"`
	Zone   string  `json:"zone"`
	Speed  float64 `json:"speed"` // km/h
	Rating float64 `json:"rating"`
}
