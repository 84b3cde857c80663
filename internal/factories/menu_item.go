package factories

import (
	"math"
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/foodash/internal/models"
)

var menuByCuisine = map[string][]string{
	"Italian":       {"Margherita Pizza", "Spaghetti Carbonara", "Lasagna", "Tiramisu"},
	"Indian":        {"Chicken Tikka Masala", "Vegetable Curry", "Naan Bread", "Biryani"},
	"American":      {"Cheeseburger", "Hot Dog", "BBQ Ribs", "Apple Pie"},
	"Japanese":      {"Sushi Roll", "Ramen", "Tempura", "Miso Soup"},
	"Mexican":       {"Tacos", "Burrito", "Guacamole", "Quesadilla"},
	"Chinese":       {"Kung Pao Chicken", "Fried Rice", "Dumplings", "Mapo Tofu"},
	"Thai":          {"Pad Thai", "Green Curry", "Tom Yum Soup", "Mango Sticky Rice"},
	"Greek":         {"Gyros", "Greek Salad", "Moussaka", "Baklava"},
	"French":        {"Coq au Vin", "Beef Bourguignon", "Ratatouille", "Crème Brûlée"},
	"Mediterranean": {"Falafel", "Hummus", "Tabbouleh", "Grilled Halloumi"},
	"Fast Food":     {"Classic Cheeseburger", "Veggie Burger", "Chicken Nuggets", "Fries"},
}

type MenuItemFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewMenuItemFactory(rng *rand.Rand) *MenuItemFactory {
	f, r := newSource(rng)
	return &MenuItemFactory{fake: f, rng: r}
}

// CreateCategories numbers the configured category names from 1.
func (mf *MenuItemFactory) CreateCategories(names []string) []models.Category {
	categories := make([]models.Category, len(names))
	for i, name := range names {
		categories[i] = models.Category{ID: int64(i + 1), Name: name}
	}
	return categories
}

func (mf *MenuItemFactory) CreateMenuItem(id int64, restaurant models.Restaurant, categories []models.Category) models.Product {
	var categoryID int64
	if len(categories) > 0 {
		categoryID = categories[mf.rng.Intn(len(categories))].ID
	}
	return models.Product{
		ID:           id,
		RestaurantID: restaurant.ID,
		CategoryID:   categoryID,
		Name:         mf.generateRandomMenuItem(restaurant.Cuisine),
		Price:        math.Round(mf.fake.Float64(2, 5, 30)*100) / 100,
	}
}

func (mf *MenuItemFactory) generateRandomMenuItem(cuisine string) string {
	if items, ok := menuByCuisine[cuisine]; ok {
		return items[mf.rng.Intn(len(items))]
	}
	return "Special of the Day"
}
