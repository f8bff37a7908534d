package domain

import (
	"encoding/json"
	"time"
)

// EntrySource records how an entry was submitted.
type EntrySource string

const (
	SourceManualText EntrySource = "manual_text"
)

// EntryStatus tracks an entry through parsing and user confirmation.
type EntryStatus string

const (
	EntryParsed              EntryStatus = "parsed"
	EntryPendingConfirmation EntryStatus = "pending_confirmation"
	EntryConfirmed           EntryStatus = "confirmed"
	EntryRejected            EntryStatus = "rejected"
)

// Entry is one user submission: the raw text plus what the parser made of it.
type Entry struct {
	EntryID       string          `json:"entryID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`
	RawText       string          `json:"rawText"`
	Source        EntrySource     `json:"source"`
	Status        EntryStatus     `json:"status"`
	OccurredHint  *time.Time      `json:"occurredAtHint,omitempty"` // Client-supplied time the money moved
	ParserOutput  json.RawMessage `json:"parserOutput,omitempty"`   // {"raw": ..., "post_processed": ...}
	ParserVersion *string         `json:"parserVersion,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	AuditFields
}
