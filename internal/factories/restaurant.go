package factories

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/foodash/internal/models"
)

var allCuisines = []string{
	"Italian", "Cafe", "Indian", "American", "European", "Japanese", "Mexican",
	"Caribbean", "Chinese", "Thai", "Vietnamese", "Greek", "French", "Mediterranean",
	"Fast Food", "Street Food",
}

type RestaurantFactory struct {
	fake      faker.Faker
	rng       *rand.Rand
	slugCache sync.Map // to track used slugs
}

func NewRestaurantFactory(rng *rand.Rand) *RestaurantFactory {
	f, r := newSource(rng)
	return &RestaurantFactory{fake: f, rng: r}
}

func (rf *RestaurantFactory) CreateRestaurant(id, ownerID int64, zones []string) models.Restaurant {
	name := rf.fake.Company().Name()
	zone := ""
	if len(zones) > 0 {
		zone = zones[rf.rng.Intn(len(zones))]
	}

	return models.Restaurant{
		ID:      id,
		Name:    name,
		Slug:    rf.createUniqueSlug(name),
		OwnerID: ownerID,
		Zone:    zone,
		Cuisine: allCuisines[rf.rng.Intn(len(allCuisines))],
		Rating:  rf.fake.Float64(1, 3, 5),
	}
}

func (rf *RestaurantFactory) createUniqueSlug(name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "restaurant"
	}

	slug := base
	counter := 1

	for {
		if _, exists := rf.slugCache.LoadOrStore(slug, true); !exists {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}
