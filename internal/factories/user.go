package factories

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/foodash/internal/models"
)

var fake = faker.New()

// newSource pairs a faker with the rng it draws from, so a seeded run
// produces the same names as well as the same numbers.
func newSource(rng *rand.Rand) (faker.Faker, *rand.Rand) {
	if rng == nil {
		return fake, rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return faker.NewWithSeed(rng), rng
}

type CustomerSegment struct {
	Name           string
	Ratio          float64
	OrdersPerMonth float64
	PeakHourBias   float64
}

var CustomerSegments = []CustomerSegment{
	{Name: "frequent", Ratio: 0.2, OrdersPerMonth: 12, PeakHourBias: 1.4},
	{Name: "regular", Ratio: 0.5, OrdersPerMonth: 5, PeakHourBias: 1.2},
	{Name: "occasional", Ratio: 0.3, OrdersPerMonth: 1.5, PeakHourBias: 1.0},
}

// Customer is a generated user plus the behaviour the simulator samples from.
// Only Record is persisted.
type Customer struct {
	Record         models.UserRecord
	Name           string
	Email          string
	Segment        string
	OrderFrequency float64 // expected orders per day
	PeakHourBias   float64
}

type UserFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewUserFactory(rng *rand.Rand) *UserFactory {
	f, r := newSource(rng)
	return &UserFactory{fake: f, rng: r}
}

func (uf *UserFactory) assignUserSegment() CustomerSegment {
	r := uf.rng.Float64()
	acc := 0.0
	for _, s := range CustomerSegments {
		acc += s.Ratio
		if r < acc {
			return s
		}
	}
	return CustomerSegments[len(CustomerSegments)-1]
}

// CreateCustomer builds a customer who signed up somewhere in [from, to).
func (uf *UserFactory) CreateCustomer(id int64, from, to time.Time) Customer {
	segment := uf.assignUserSegment()
	return Customer{
		Record: models.UserRecord{
			ID:        id,
			CreatedAt: uf.joinTime(from, to),
			Role:      models.RoleCustomer,
		},
		Name:           uf.fake.Person().Name(),
		Email:          uf.fake.Internet().Email(),
		Segment:        segment.Name,
		OrderFrequency: uf.calculateInitialOrderFrequency(segment),
		PeakHourBias:   segment.PeakHourBias,
	}
}

// CreateStaff builds a non-customer account (owner or courier) that existed
// before the simulated period.
func (uf *UserFactory) CreateStaff(id int64, role string, before time.Time) models.UserRecord {
	return models.UserRecord{
		ID:        id,
		CreatedAt: uf.joinTime(before.AddDate(-1, 0, 0), before),
		Role:      role,
	}
}

func (uf *UserFactory) joinTime(from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	span := to.Sub(from)
	return from.Add(time.Duration(uf.rng.Int63n(int64(span)))).Truncate(time.Second)
}

func (uf *UserFactory) calculateInitialOrderFrequency(segment CustomerSegment) float64 {
	baseFrequency := segment.OrdersPerMonth / 30.0

	// ±20%
	randomFactor := 0.8 + (uf.rng.Float64() * 0.4)

	return baseFrequency * randomFactor
}
