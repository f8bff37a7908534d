package dto

import "github.com/shopspring/decimal"

// FormatAmount renders money with two fixed decimal places, the way every amount
// leaves the API.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
