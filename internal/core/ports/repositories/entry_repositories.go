package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
)

// EntryReader defines read operations for entry data
type EntryReader interface {
	// FindEntryByID retrieves an entry by its ID. Returns apperrors.ErrNotFound if missing.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntriesByUser returns one page of a user's entries, newest first, and the total count.
	ListEntriesByUser(ctx context.Context, userID string, page pagination.Params) ([]domain.Entry, int, error)
}

// EntryWriter defines write operations for entry data
type EntryWriter interface {
	// SaveEntry inserts a new entry.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// UpdateEntryStatus changes the status of an entry.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error

	// ConfirmEntry atomically soft-deletes the entry's current transactions, inserts the
	// given ones and marks the entry confirmed.
	ConfirmEntry(ctx context.Context, entryID string, transactions []domain.Transaction, updatedBy string, updatedAt time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
