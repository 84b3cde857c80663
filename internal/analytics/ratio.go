package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// rate is a proportion in [0, 1]; a zero denominator yields 0.
func rate(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return clamp(r, 0, 1)
}

// div is an unbounded quotient that is 0 instead of NaN or Inf.
func div(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// money accumulates currency amounts without float drift.
type money struct {
	d decimal.Decimal
}

func (m *money) add(v float64) {
	m.d = m.d.Add(decimal.NewFromFloat(v))
}

func (m money) float() float64 {
	return m.d.Round(2).InexactFloat64()
}
