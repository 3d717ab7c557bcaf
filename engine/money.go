package engine

import "github.com/shopspring/decimal"

// round2 rounds to cents
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// add2 adds two amounts and rounds the sum to cents
func add2(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}

// roundStake rounds a stake to a whole unit, halves away from zero
func roundStake(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
