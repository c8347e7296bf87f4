package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// GrowthRate is the percentage change from previous to current.
// A zero previous value yields 100 when current grew and 0 otherwise.
func GrowthRate(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return 100
		}
		return 0
	}
	f, _ := current.Sub(previous).Div(previous).Mul(hundred).Float64()
	return f
}

func GrowthRateInt(current, previous int) float64 {
	return GrowthRate(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

// percentage returns part/total*100, 0 when total is zero.
func percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	f, _ := part.Div(total).Mul(hundred).Float64()
	return f
}

func percentageInt(part, total int) float64 {
	return percentage(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(total)))
}
