package models

import "time"

// EntryStatus is the status column of the entries table.
type EntryStatus string

// Entry is the row shape of the entries table.
type Entry struct {
	EntryID        string      `json:"entryID"` // Primary Key (UUID)
	UserID         string      `json:"userID"`
	RawText        string      `json:"rawText"`
	Source         string      `json:"source"`
	Status         EntryStatus `json:"status"`
	OccurredAtHint *time.Time  `json:"occurredAtHint"` // Nullable
	ParserOutput   []byte      `json:"parserOutput"`   // JSONB, nullable
	ParserVersion  *string     `json:"parserVersion"`  // Nullable
	Notes          *string     `json:"notes"`          // Nullable
	AuditFields
}
