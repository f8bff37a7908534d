package domain

import (
	"github.com/shopspring/decimal"
)

// CategoryTotal is the sum of transaction amounts for one direction/category pair.
type CategoryTotal struct {
	Direction Direction       `json:"direction"`
	Category  string          `json:"category"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// MonthlySummary aggregates a user's ledger over one calendar month.
type MonthlySummary struct {
	Month            string          `json:"month"` // YYYY-MM
	TotalInflow      decimal.Decimal `json:"totalInflow"`
	TotalOutflow     decimal.Decimal `json:"totalOutflow"`
	Net              decimal.Decimal `json:"net"` // TotalInflow - TotalOutflow
	ByCategory       []CategoryTotal `json:"byCategory"`
	TransactionCount int             `json:"transactionCount"`
}
