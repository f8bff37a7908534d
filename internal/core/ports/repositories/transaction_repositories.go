package repositories

import (
	"context"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
)

// TransactionReader defines read operations for transaction data.
// Soft-deleted transactions are never returned.
type TransactionReader interface {
	// FindTransactionByID retrieves a live transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByEntryID retrieves the live transactions of an entry.
	FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error)

	// ListTransactions returns one filtered, sorted page of a user's transactions and the
	// total number of rows matching the filters.
	ListTransactions(ctx context.Context, userID string, query domain.TransactionQuery, page pagination.Params) ([]domain.Transaction, int, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// UpdateTransaction overwrites the editable fields of a transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
