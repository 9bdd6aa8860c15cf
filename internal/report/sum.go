package report

import (
	"github.com/shopspring/decimal"
)

// accumulator sums currency values in decimal so that totals do not pick up
// binary floating point drift (0.1 + 0.2 == 0.3).
type accumulator struct {
	total decimal.Decimal
}

func (a *accumulator) add(f float64) {
	a.total = a.total.Add(decimal.NewFromFloat(f))
}

func (a accumulator) value() float64 {
	f, _ := a.total.Float64()
	return f
}

func difference(a, b accumulator) float64 {
	f, _ := a.total.Sub(b.total).Float64()
	return f
}
