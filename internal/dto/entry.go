package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConfirmTransactionInput is one transaction as the user accepted it.
type ConfirmTransactionInput struct {
	OccurredAt        time.Time       `json:"occurred_at" binding:"required"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency" binding:"omitempty,len=3"`
	Direction         string          `json:"direction" binding:"required"`
	Type              string          `json:"type" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	NeedsConfirmation bool            `json:"needs_confirmation"`
	Assumptions       []string        `json:"assumptions"`
}

// ConfirmEntryRequest replaces the transactions of an entry with the user's final version.
type ConfirmEntryRequest struct {
	EntryID      string                    `json:"entry_id" binding:"required,uuid"`
	Transactions []ConfirmTransactionInput `json:"transactions" binding:"required,min=1,dive"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID        string             `json:"entry_id"`
	UserID         string             `json:"user_id"`
	RawText        string             `json:"raw_text"`
	Source         domain.EntrySource `json:"source"`
	Status         domain.EntryStatus `json:"status"`
	OccurredAtHint *time.Time         `json:"occurred_at_hint"`
	ParserOutput   json.RawMessage    `json:"parser_output"`
	ParserVersion  *string            `json:"parser_version"`
	Notes          *string            `json:"notes"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ConfirmEntryResponse is the confirmed entry with its new transactions.
type ConfirmEntryResponse struct {
	Entry        EntryResponse         `json:"entry"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Items      []EntryResponse `json:"items"`
	TotalCount int             `json:"total_count"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	parserOutput := e.ParserOutput
	if len(parserOutput) == 0 {
		parserOutput = json.RawMessage("null")
	}
	return EntryResponse{
		EntryID:        e.EntryID,
		UserID:         e.UserID,
		RawText:        e.RawText,
		Source:         e.Source,
		Status:         e.Status,
		OccurredAtHint: e.OccurredHint,
		ParserOutput:   parserOutput,
		ParserVersion:  e.ParserVersion,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.LastUpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
