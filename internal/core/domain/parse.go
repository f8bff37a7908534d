package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ParseOutput is the schema-validated payload produced by the LLM extraction step.
type ParseOutput struct {
	EntrySummary      *string
	OccurredAt        *time.Time
	Transactions      []RawTransactionGuess
	NeedsConfirmation bool
	Assumptions       []string
}

// RawTransactionGuess is one transaction as the LLM claimed it. Only the amount is typed;
// direction, type and category are free-form until post-processing.
type RawTransactionGuess struct {
	Amount            float64
	Currency          string
	Direction         string
	Type              string
	Category          string
	NeedsConfirmation bool
	Assumptions       []string
}

// NormalizedTransaction is a transaction after all post-processing rules ran.
type NormalizedTransaction struct {
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Direction         Direction       `json:"direction"`
	Type              TransactionType `json:"type"`
	Category          string          `json:"category"`
	NeedsConfirmation bool            `json:"needs_confirmation"`
	Assumptions       []string        `json:"assumptions"`
}

// NormalizedEntryResult is the preview shown to the user before confirmation.
type NormalizedEntryResult struct {
	EntrySummary      *string                 `json:"entry_summary"`
	OccurredAt        *time.Time              `json:"occurred_at"`
	Transactions      []NormalizedTransaction `json:"transactions"`
	NeedsConfirmation bool                    `json:"needs_confirmation"`
	Assumptions       []string                `json:"assumptions"`
}

// ParsedResult is what the parser hands back for one raw text: the normalized preview,
// the unmodified LLM payload (kept for auditing) and the parser version that produced it.
type ParsedResult struct {
	Preview       NormalizedEntryResult
	RawOutput     json.RawMessage
	ParserVersion string
}

// MarshalJSON renders the amount with exactly two decimal places.
func (t NormalizedTransaction) MarshalJSON() ([]byte, error) {
	type alias NormalizedTransaction
	return json.Marshal(struct {
		alias
		Amount string `json:"amount"`
	}{alias: alias(t), Amount: t.Amount.StringFixed(2)})
}
