package dto

import (
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsParams defines query parameters for listing transactions.
// Type and Category accept comma-separated lists.
type ListTransactionsParams struct {
	From      string `form:"from"` // YYYY-MM-DD, inclusive
	To        string `form:"to"`   // YYYY-MM-DD, inclusive
	Direction string `form:"direction"`
	Type      string `form:"type"`
	Category  string `form:"category"`
	MinAmount string `form:"min_amount"`
	MaxAmount string `form:"max_amount"`
	Sort      string `form:"sort"`
	Order     string `form:"order"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// UpdateTransactionRequest defines the fields that can be edited on a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	Currency  *string          `json:"currency" binding:"omitempty,len=3"`
	Direction *string          `json:"direction"`
	Type      *string          `json:"type"`
	Category  *string          `json:"category"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                 `json:"transaction_id"`
	EntryID           string                 `json:"entry_id"`
	OccurredAt        time.Time              `json:"occurred_at"`
	Amount            string                 `json:"amount"`
	Currency          string                 `json:"currency"`
	Direction         domain.Direction       `json:"direction"`
	Type              domain.TransactionType `json:"type"`
	Category          string                 `json:"category"`
	NeedsConfirmation bool                   `json:"needs_confirmation"`
	Assumptions       []string               `json:"assumptions"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Items      []TransactionResponse `json:"items"`
	TotalCount int                   `json:"total_count"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	assumptions := txn.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		EntryID:           txn.EntryID,
		OccurredAt:        txn.OccurredAt,
		Amount:            FormatAmount(txn.Amount),
		Currency:          txn.CurrencyCode,
		Direction:         txn.Direction,
		Type:              txn.Type,
		Category:          txn.Category,
		NeedsConfirmation: txn.NeedsConfirmation,
		Assumptions:       assumptions,
		CreatedAt:         txn.CreatedAt,
		UpdatedAt:         txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
