package services

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/magicboy5300/exchange/internal/models"
)

// Convert pivots amount through USD: amount / rates[from] * rates[to].
// It returns 0 for unknown codes and for amounts that are negative or not finite.
func Convert(amount float64, from, to string, rates models.Rates) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	fromRate, toRate, ok := pair(from, to, rates)
	if !ok {
		return 0
	}
	return amount / fromRate * toRate
}

// EffectiveRate is the to-per-from multiplier, independent of any amount.
func EffectiveRate(from, to string, rates models.Rates) float64 {
	fromRate, toRate, ok := pair(from, to, rates)
	if !ok {
		return 0
	}
	return toRate / fromRate
}

func pair(from, to string, rates models.Rates) (float64, float64, bool) {
	fromRate, okFrom := rates[from]
	toRate, okTo := rates[to]
	if !okFrom || !okTo || !(fromRate > 0) {
		return 0, 0, false
	}
	return fromRate, toRate, true
}

// FormatAmount renders an amount with 2 decimal places, half away from zero.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatRate renders a rate with 4 decimal places. Rates too small to show at
// that scale keep 4 significant digits instead.
func FormatRate(v float64) string {
	if v != 0 && math.Abs(v) < 0.0001 {
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(4)
}
