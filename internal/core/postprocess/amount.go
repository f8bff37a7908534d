package postprocess

import (
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LargeAmountThreshold is the amount (in currency units) at and above which an
// amount is considered suspicious.
var LargeAmountThreshold = decimal.NewFromInt(1_000_000)

// moneyPlaces is the number of fractional digits kept for every amount.
const moneyPlaces = 2

// CoerceAmount converts the float received from the LLM into a fixed-point value
// with two decimal places, rounding half to even.
func CoerceAmount(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).RoundBank(moneyPlaces)
}

// applyAmountRules flips non-positive amounts and flags suspiciously large ones.
// Both rules may fire on the same amount.
func applyAmountRules(s txState, _ domain.RawTransactionGuess) txState {
	if !s.amount.IsPositive() {
		s.amount = s.amount.Abs()
		s = s.flag(AssumptionNonPositiveAmount)
	}
	if s.amount.GreaterThanOrEqual(LargeAmountThreshold) {
		s = s.flag(AssumptionLargeAmount)
	}
	return s
}
