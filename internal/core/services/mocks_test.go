package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/core/ports"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock LLM client ---
type MockLLMClient struct {
	mock.Mock
}

var _ ports.LLMClient = (*MockLLMClient)(nil)

func (m *MockLLMClient) Parse(ctx context.Context, rawText string, referenceDatetime string) ([]byte, error) {
	args := m.Called(ctx, rawText, referenceDatetime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Mock ParserSvc ---
type MockParserSvc struct {
	mock.Mock
}

var _ portssvc.ParserSvc = (*MockParserSvc)(nil)

func (m *MockParserSvc) Parse(ctx context.Context, rawText string, referenceTime time.Time) (*domain.ParsedResult, error) {
	args := m.Called(ctx, rawText, referenceTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedResult), args.Error(1)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByUser(ctx context.Context, userID string, page pagination.Params) ([]domain.Entry, int, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Entry), args.Int(1), args.Error(2)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, entryID, status, updatedBy, updatedAt).Error(0)
}

func (m *MockEntryRepository) ConfirmEntry(ctx context.Context, entryID string, transactions []domain.Transaction, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, entryID, transactions, updatedBy, updatedAt).Error(0)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, query domain.TransactionQuery, page pagination.Params) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, userID, query, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}
