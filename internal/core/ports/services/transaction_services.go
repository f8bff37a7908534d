package services

import (
	"context"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListTransactions retrieves a filtered, sorted page of the user's transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetTransaction retrieves one of the user's transactions.
	GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// UpdateTransaction applies a partial edit to one of the user's transactions.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
