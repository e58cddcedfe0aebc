package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero at two decimals, working on the shortest
// decimal representation of v so that 1.005 rounds to 1.01. NaN and ±Inf are
// returned unchanged.
func Round2(v float64) float64 {
	if !finite64(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// sum2 adds values and rounds the result. A non-finite value makes the sum
// non-finite.
func sum2(values ...float64) float64 {
	total := decimal.Zero
	for i, v := range values {
		if !finite64(v) {
			var raw float64
			for _, w := range values[i:] {
				raw += w
			}
			return raw
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

func finite64(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
