package dto

import (
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
)

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	RawText        string     `json:"raw_text" binding:"required,max=4000"`
	OccurredAtHint *time.Time `json:"occurred_at_hint"` // Optional: when the money moved, if the client knows
}

// ParseResponse is the preview returned for a freshly parsed entry.
type ParseResponse struct {
	EntryID       string             `json:"entry_id"`
	Status        domain.EntryStatus `json:"status"`
	ParserVersion string             `json:"parser_version"`
	domain.NormalizedEntryResult
}
