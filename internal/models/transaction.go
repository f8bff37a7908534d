package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
// Amount is stored as NUMERIC(12,2); assumptions as a JSONB array of strings.
type Transaction struct {
	TransactionID     string          `json:"transactionID"` // Primary Key (UUID)
	EntryID           string          `json:"entryID"`       // FK -> entries.entry_id (Not Null)
	UserID            string          `json:"userID"`
	OccurredAt        time.Time       `json:"occurredAt"`
	Amount            decimal.Decimal `json:"amount"`
	CurrencyCode      string          `json:"currencyCode"`
	Direction         string          `json:"direction"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Assumptions       []string        `json:"assumptions"`
	NeedsConfirmation bool            `json:"needsConfirmation"`
	IsDeleted         bool            `json:"isDeleted"`
	AuditFields
}
