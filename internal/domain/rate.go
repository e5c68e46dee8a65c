package domain

import "github.com/shopspring/decimal"

// Rate is one exchange-rate record as published by the central bank.
// It is a value object: fetched per cycle, never cached.
type Rate struct {
	Code  string          // ISO code, e.g. "USD"
	Name  string          // English display name
	Value decimal.Decimal // rate in so'm
	Diff  decimal.Decimal // signed change since the previous publication
	Date  string          // effective date as published, "DD.MM.YYYY"
}

// TrendDirection classifies a rate's movement since the previous day.
type TrendDirection int

const (
	TrendFlat TrendDirection = iota
	TrendUp
	TrendDown
)

// Trend derives the movement direction from a signed difference.
func Trend(diff decimal.Decimal) TrendDirection {
	switch diff.Sign() {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendFlat
	}
}
