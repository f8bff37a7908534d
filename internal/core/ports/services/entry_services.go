package services

import (
	"context"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
)

// EntryReaderSvc defines read operations for entry data
type EntryReaderSvc interface {
	// GetEntry retrieves one of the user's entries.
	GetEntry(ctx context.Context, userID string, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a page of the user's entries, newest first.
	ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for entry data
type EntryWriterSvc interface {
	// ParseEntry parses raw text and stores it as an entry awaiting confirmation.
	ParseEntry(ctx context.Context, userID string, req dto.ParseRequest) (*dto.ParseResponse, error)

	// ConfirmEntry replaces the entry's transactions with the confirmed ones.
	ConfirmEntry(ctx context.Context, userID string, req dto.ConfirmEntryRequest) (*dto.ConfirmEntryResponse, error)

	// RejectEntry marks an entry as rejected. Rejected entries cannot be confirmed.
	RejectEntry(ctx context.Context, userID string, entryID string) (*domain.Entry, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
