package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/core/services"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.TransactionSvcFacade
	userID      string
	ctx         context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo)
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) transaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		EntryID:       uuid.NewString(),
		UserID:        suite.userID,
		OccurredAt:    time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString("250"),
		CurrencyCode:  "INR",
		Direction:     domain.Outflow,
		Type:          domain.Expense,
		Category:      "Groceries",
		Assumptions:   []string{},
	}
}

func (suite *TransactionServiceTestSuite) TestListTransactions_Defaults() {
	var captured domain.TransactionQuery
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, suite.userID, mock.AnythingOfType("domain.TransactionQuery"), pagination.Params{Limit: pagination.DefaultLimit}).
		Run(func(args mock.Arguments) { captured = args.Get(2).(domain.TransactionQuery) }).
		Return([]domain.Transaction{*suite.transaction()}, 1, nil).Once()

	resp, err := suite.service.ListTransactions(suite.ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Items, 1)
	suite.Equal("250.00", resp.Items[0].Amount)
	suite.Equal(1, resp.TotalCount)
	suite.Equal(domain.SortByOccurredTime, captured.SortField)
	suite.Equal(domain.SortDesc, captured.SortOrder)
	suite.Nil(captured.From)
	suite.Nil(captured.Direction)
	suite.Empty(captured.Types)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_Filters() {
	var captured domain.TransactionQuery
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, suite.userID, mock.AnythingOfType("domain.TransactionQuery"), pagination.Params{Limit: 50, Offset: 100}).
		Run(func(args mock.Arguments) { captured = args.Get(2).(domain.TransactionQuery) }).
		Return([]domain.Transaction{}, 0, nil).Once()

	_, err := suite.service.ListTransactions(suite.ctx, suite.userID, dto.ListTransactionsParams{
		From:      "2026-04-01",
		To:        "2026-04-30",
		Direction: "OUTFLOW",
		Type:      "expense, refund",
		Category:  "Groceries,Food & Drinks",
		MinAmount: "10",
		MaxAmount: "500.50",
		Sort:      "amount",
		Order:     "ASC",
		Limit:     50,
		Offset:    100,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(captured.From)
	suite.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *captured.From)
	suite.Require().NotNil(captured.To)
	suite.Equal(time.Date(2026, 4, 30, 23, 59, 59, 999999999, time.UTC), *captured.To)
	suite.Require().NotNil(captured.Direction)
	suite.Equal(domain.Outflow, *captured.Direction)
	suite.Equal([]domain.TransactionType{domain.Expense, domain.Refund}, captured.Types)
	suite.Equal([]string{"Groceries", "Food & Drinks"}, captured.Categories)
	suite.True(decimal.NewFromInt(10).Equal(*captured.MinAmount))
	suite.True(decimal.RequireFromString("500.5").Equal(*captured.MaxAmount))
	suite.Equal(domain.SortByAmount, captured.SortField)
	suite.Equal(domain.SortAsc, captured.SortOrder)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_InvalidParams() {
	tests := []struct {
		name    string
		params  dto.ListTransactionsParams
		message string
	}{
		{name: "bad from", params: dto.ListTransactionsParams{From: "04/01/2026"}},
		{name: "bad to", params: dto.ListTransactionsParams{To: "2026-13-01"}},
		{name: "from after to", params: dto.ListTransactionsParams{From: "2026-05-01", To: "2026-04-01"}},
		{name: "bad direction", params: dto.ListTransactionsParams{Direction: "both"}},
		{name: "bad type", params: dto.ListTransactionsParams{Type: "expense,gift"}},
		{name: "bad min amount", params: dto.ListTransactionsParams{MinAmount: "ten"}},
		{name: "min above max", params: dto.ListTransactionsParams{MinAmount: "100", MaxAmount: "10"}},
		{
			name:    "bad sort",
			params:  dto.ListTransactionsParams{Sort: "merchant"},
			message: "unsupported sort field 'merchant'. Allowed: amount, category, occurred_time",
		},
		{name: "bad order", params: dto.ListTransactionsParams{Order: "up"}},
		{name: "limit too large", params: dto.ListTransactionsParams{Limit: 501}},
		{name: "negative offset", params: dto.ListTransactionsParams{Offset: -1}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.ListTransactions(suite.ctx, suite.userID, tt.params)

			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
			if tt.message != "" {
				var appErr *apperrors.AppError
				suite.Require().ErrorAs(err, &appErr)
				suite.Equal(tt.message, appErr.Message)
			}
		})
	}
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_RepoError() {
	suite.mockTxnRepo.On("ListTransactions", suite.ctx, suite.userID, mock.Anything, mock.Anything).
		Return(nil, 0, errors.New("db down")).Once()

	_, err := suite.service.ListTransactions(suite.ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().Error(err)
	suite.NotErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction() {
	txn := suite.transaction()
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txn.TransactionID).Return(txn, nil).Once()

	got, err := suite.service.GetTransaction(suite.ctx, suite.userID, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(txn.TransactionID, got.TransactionID)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_OtherUser() {
	txn := suite.transaction()
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.GetTransaction(suite.ctx, uuid.NewString(), txn.TransactionID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_Missing() {
	id := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetTransaction(suite.ctx, suite.userID, id)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction() {
	txn := suite.transaction()
	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txn.TransactionID).Return(txn, nil).Once()

	var stored domain.Transaction
	suite.mockTxnRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	amount := decimal.RequireFromString("99.999")
	currency := "usd"
	category := "Food & Drinks"
	updated, err := suite.service.UpdateTransaction(suite.ctx, suite.userID, txn.TransactionID, dto.UpdateTransactionRequest{
		Amount:   &amount,
		Currency: &currency,
		Category: &category,
	})

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("100").Equal(updated.Amount))
	suite.Equal("USD", stored.CurrencyCode)
	suite.Equal("Food & Drinks", stored.Category)
	suite.Equal(domain.Outflow, stored.Direction, "fields not provided stay untouched")
	suite.Equal(suite.userID, stored.LastUpdatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_Invalid() {
	zero := decimal.Zero
	badCurrency := "RUPEE"
	badDirection := "sideways"
	badType := "gift"
	badCategory := "groceries"

	tests := []struct {
		name string
		req  dto.UpdateTransactionRequest
	}{
		{name: "zero amount", req: dto.UpdateTransactionRequest{Amount: &zero}},
		{name: "bad currency", req: dto.UpdateTransactionRequest{Currency: &badCurrency}},
		{name: "bad direction", req: dto.UpdateTransactionRequest{Direction: &badDirection}},
		{name: "bad type", req: dto.UpdateTransactionRequest{Type: &badType}},
		{name: "category is case sensitive", req: dto.UpdateTransactionRequest{Category: &badCategory}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			txn := suite.transaction()
			suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, txn.TransactionID).Return(txn, nil).Once()

			_, err := suite.service.UpdateTransaction(suite.ctx, suite.userID, txn.TransactionID, tt.req)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}
