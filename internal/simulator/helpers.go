package simulator

import (
	"math"
	"math/rand"
)

const (
	baseDeliveryFee       = 2.99
	smallOrderThreshold   = 15.0
	smallOrderFee         = 1.50
	freeDeliveryThreshold = 40.0
)

func calculateDeliveryFee(subtotal float64) float64 {
	if subtotal >= freeDeliveryThreshold {
		return 0
	}
	fee := baseDeliveryFee
	if subtotal < smallOrderThreshold {
		fee += smallOrderFee
	}
	return fee
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// poisson draws an event count with mean lambda. Large means use the normal
// approximation.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda > 30 {
		n := math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64())
		return int(math.Max(0, n))
	}
	limit := math.Exp(-lambda)
	k, p := 0, 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// selectWeighted returns an index drawn in proportion to weights, or -1 when
// no weight is positive.
func selectWeighted(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if r < acc {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
