package simulator

import (
	"time"
)

type OrderPattern struct {
	Type               string
	BaseProbability    float64
	TimeMultipliers    map[int]float64
	WeekdayMultipliers map[time.Weekday]float64
}

// backgroundDemand keeps quiet hours from being empty.
const backgroundDemand = 0.15

var DefaultOrderPatterns = map[string]OrderPattern{
	"breakfast_rush": {
		Type:            "breakfast",
		BaseProbability: 0.4,
		TimeMultipliers: map[int]float64{
			7:  1.5,
			8:  2.0,
			9:  1.8,
			10: 1.2,
		},
		WeekdayMultipliers: map[time.Weekday]float64{
			time.Saturday: 0.7,
			time.Sunday:   0.8,
		},
	},
	"lunch_rush": {
		Type:            "lunch",
		BaseProbability: 0.6,
		TimeMultipliers: map[int]float64{
			11: 1.3,
			12: 2.0,
			13: 2.0,
			14: 1.5,
		},
		WeekdayMultipliers: map[time.Weekday]float64{
			time.Monday:   1.2,
			time.Friday:   1.4,
			time.Saturday: 0.8,
			time.Sunday:   0.7,
		},
	},
	"dinner_rush": {
		Type:            "dinner",
		BaseProbability: 0.5,
		TimeMultipliers: map[int]float64{
			17: 1.2,
			18: 1.8,
			19: 2.0,
			20: 1.7,
			21: 1.3,
		},
		WeekdayMultipliers: map[time.Weekday]float64{
			time.Friday:   1.6,
			time.Saturday: 1.5,
			time.Sunday:   1.3,
		},
	},
	"late_night": {
		Type:            "late_night",
		BaseProbability: 0.3,
		TimeMultipliers: map[int]float64{
			22: 1.4,
			23: 1.6,
			0:  1.3,
			1:  1.0,
			2:  0.8,
		},
		WeekdayMultipliers: map[time.Weekday]float64{
			time.Friday:   2.0,
			time.Saturday: 1.8,
		},
	},
}

// hourWeight is the relative order intensity of an hour of the week.
func hourWeight(day time.Weekday, hour int) float64 {
	w := backgroundDemand
	for _, p := range DefaultOrderPatterns {
		m, ok := p.TimeMultipliers[hour]
		if !ok {
			continue
		}
		dayFactor := 1.0
		if v, ok := p.WeekdayMultipliers[day]; ok {
			dayFactor = v
		}
		w += p.BaseProbability * m * dayFactor
	}
	return w
}

// weekProfile holds hourWeight for every hour of the week, scaled so that
// an average day sums to 1.
type weekProfile [7][24]float64

func newWeekProfile() weekProfile {
	var p weekProfile
	total := 0.0
	for d := time.Sunday; d <= time.Saturday; d++ {
		for h := 0; h < 24; h++ {
			p[d][h] = hourWeight(d, h)
			total += p[d][h]
		}
	}
	meanDay := total / 7
	for d := range p {
		for h := range p[d] {
			p[d][h] /= meanDay
		}
	}
	return p
}

func isWeekdayPeakHour(hour int) bool {
	switch hour {
	case 12, 13, 19, 20:
		return true
	}
	return false
}
