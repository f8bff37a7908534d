package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction says whether money came in or went out.
type Direction string

const (
	Inflow  Direction = "inflow"
	Outflow Direction = "outflow"
)

// TransactionType is the closed set of transaction kinds the ledger understands.
type TransactionType string

const (
	Expense           TransactionType = "expense"
	Income            TransactionType = "income"
	RepaymentReceived TransactionType = "repayment_received"
	RepaymentSent     TransactionType = "repayment_sent"
	Refund            TransactionType = "refund"
	Transfer          TransactionType = "transfer"
	InvestmentIncome  TransactionType = "investment_income"
	OtherType         TransactionType = "other"
)

// DefaultCurrency is used whenever a transaction carries no currency code.
const DefaultCurrency = "INR"

// CategoryOther is the catch-all category.
const CategoryOther = "Other"

// Directions is the allow-list of directions.
var Directions = []Direction{Inflow, Outflow}

// TransactionTypes is the allow-list of transaction types.
var TransactionTypes = []TransactionType{
	Expense,
	Income,
	RepaymentReceived,
	RepaymentSent,
	InvestmentIncome,
	Refund,
	Transfer,
	OtherType,
}

// Categories is the allow-list of categories. Membership is case-sensitive.
var Categories = []string{
	"Food & Drinks",
	"Groceries",
	"Transport",
	"Entertainment",
	"Shopping",
	"Subscriptions",
	"Bills & Utilities",
	"Health",
	"Rent",
	"Travel",
	"Education",
	"Income",
	"Investments",
	"Loans",
	"Transfer",
	CategoryOther,
}

// ParseDirection matches a direction case-insensitively after trimming.
func ParseDirection(value string) (Direction, bool) {
	lowered := strings.ToLower(strings.TrimSpace(value))
	for _, d := range Directions {
		if lowered == string(d) {
			return d, true
		}
	}
	return "", false
}

// ParseTransactionType matches a type case-insensitively after trimming.
func ParseTransactionType(value string) (TransactionType, bool) {
	lowered := strings.ToLower(strings.TrimSpace(value))
	for _, t := range TransactionTypes {
		if lowered == string(t) {
			return t, true
		}
	}
	return "", false
}

// IsAllowedCategory reports exact membership in Categories.
func IsAllowedCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction is a confirmed ledger line derived from an Entry.
type Transaction struct {
	TransactionID     string          `json:"transactionID"` // Primary Key (UUID)
	EntryID           string          `json:"entryID"`       // FK -> Entry.entryID
	UserID            string          `json:"userID"`        // Owner, copied from the entry
	OccurredAt        time.Time       `json:"occurredAt"`
	Amount            decimal.Decimal `json:"amount"` // Positive, 2dp
	CurrencyCode      string          `json:"currencyCode"`
	Direction         Direction       `json:"direction"`
	Type              TransactionType `json:"type"`
	Category          string          `json:"category"`
	Assumptions       []string        `json:"assumptions"`
	NeedsConfirmation bool            `json:"needsConfirmation"`
	IsDeleted         bool            `json:"isDeleted"`
	AuditFields
}
