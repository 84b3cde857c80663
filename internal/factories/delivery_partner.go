package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/foodash/internal/models"
)

type DeliveryPartnerFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewDeliveryPartnerFactory(rng *rand.Rand) *DeliveryPartnerFactory {
	f, r := newSource(rng)
	return &DeliveryPartnerFactory{fake: f, rng: r}
}

func (df *DeliveryPartnerFactory) CreateDeliveryPartner(id, userID int64, zone string) models.Courier {
	return models.Courier{
		ID:     id,
		UserID: userID,
		Name:   df.fake.Person().Name(),
		Zone:   zone,
		Speed:  df.fake.Float64(1, 20, 60),
		Rating: df.fake.Float64(1, 3, 5),
	}
}
