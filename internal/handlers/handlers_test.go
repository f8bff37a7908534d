package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/core/services"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
	"github.com/SscSPs/spend_tracker_app/internal/handlers"
	"github.com/SscSPs/spend_tracker_app/internal/platform/config"
	"github.com/SscSPs/spend_tracker_app/internal/utils"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) GetEntry(ctx context.Context, userID string, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockEntryService) ParseEntry(ctx context.Context, userID string, req dto.ParseRequest) (*dto.ParseResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ParseResponse), args.Error(1)
}

func (m *MockEntryService) ConfirmEntry(ctx context.Context, userID string, req dto.ConfirmEntryRequest) (*dto.ConfirmEntryResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConfirmEntryResponse), args.Error(1)
}

func (m *MockEntryService) RejectEntry(ctx context.Context, userID string, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) MonthlySummary(ctx context.Context, userID string, month string) (*domain.MonthlySummary, error) {
	args := m.Called(ctx, userID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySummary), args.Error(1)
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockEntry       *MockEntryService
	mockTransaction *MockTransactionService
	mockReporting   *MockReportingService
	jwtSecret       string
	userID          string
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockEntry = new(MockEntryService)
	suite.mockTransaction = new(MockTransactionService)
	suite.mockReporting = new(MockReportingService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	container := &portssvc.ServiceContainer{
		Entry:       suite.mockEntry,
		Transaction: suite.mockTransaction,
		Reporting:   suite.mockReporting,
	}
	parseLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Hour, Limit: 2})

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container, parseLimiter)
}

func (suite *HandlerTestSuite) token() string {
	token, err := utils.GenerateJWT(suite.userID, suite.jwtSecret, time.Hour, "spend-tracker-test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+suite.token())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestRequiresBearerToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEntry.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestParse_Success() {
	entryID := uuid.NewString()
	resp := &dto.ParseResponse{
		EntryID:       entryID,
		Status:        domain.EntryPendingConfirmation,
		ParserVersion: "gemini-v1",
		NormalizedEntryResult: domain.NormalizedEntryResult{
			Transactions: []domain.NormalizedTransaction{{
				Amount:      decimal.RequireFromString("450"),
				Currency:    "INR",
				Direction:   domain.Outflow,
				Type:        domain.Expense,
				Category:    "Food & Drinks",
				Assumptions: []string{},
			}},
			Assumptions: []string{},
		},
	}
	suite.mockEntry.On("ParseEntry", mock.Anything, suite.userID, dto.ParseRequest{RawText: "dinner 450"}).Return(resp, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/parse", map[string]any{"raw_text": "dinner 450"})

	suite.Equal(http.StatusCreated, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(entryID, body["entry_id"])
	suite.Equal("pending_confirmation", body["status"])
	txns := body["transactions"].([]any)
	suite.Require().Len(txns, 1)
	suite.Equal("450.00", txns[0].(map[string]any)["amount"])
	suite.NotEmpty(w.Header().Get("X-RateLimit-Limit"))
	suite.mockEntry.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestParse_MissingText() {
	w := suite.do(http.MethodPost, "/api/v1/parse", map[string]any{"occurred_at_hint": "2026-05-01T10:00:00Z"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntry.AssertNotCalled(suite.T(), "ParseEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestParse_UpstreamFailure() {
	suite.mockEntry.On("ParseEntry", mock.Anything, suite.userID, mock.Anything).
		Return(nil, &services.ParserError{Msg: "LLM request failed", Err: errors.New("deadline exceeded")}).Once()

	w := suite.do(http.MethodPost, "/api/v1/parse", map[string]any{"raw_text": "dinner 450"})

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.NotContains(w.Body.String(), "deadline exceeded")
}

func (suite *HandlerTestSuite) TestParse_RateLimited() {
	suite.mockEntry.On("ParseEntry", mock.Anything, suite.userID, mock.Anything).
		Return(&dto.ParseResponse{EntryID: uuid.NewString()}, nil).Twice()

	for i := 0; i < 2; i++ {
		w := suite.do(http.MethodPost, "/api/v1/parse", map[string]any{"raw_text": "coffee 80"})
		suite.Equal(http.StatusCreated, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/parse", map[string]any{"raw_text": "coffee 80"})

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.Equal("0", w.Header().Get("X-RateLimit-Remaining"))
	suite.mockEntry.AssertNumberOfCalls(suite.T(), "ParseEntry", 2)
}

func (suite *HandlerTestSuite) TestConfirm_NotFound() {
	entryID := uuid.NewString()
	suite.mockEntry.On("ConfirmEntry", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.ConfirmEntryRequest) bool {
		return req.EntryID == entryID && len(req.Transactions) == 1 && req.Transactions[0].Amount.Equal(decimal.NewFromInt(120))
	})).Return(nil, apperrors.NewNotFoundError("entry not found")).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/confirm", map[string]any{
		"entry_id": entryID,
		"transactions": []map[string]any{{
			"occurred_at": "2026-05-01T10:00:00Z",
			"amount":      120,
			"direction":   "outflow",
			"type":        "expense",
			"category":    "Groceries",
		}},
	})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("entry not found", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestConfirm_EmptyTransactions() {
	w := suite.do(http.MethodPost, "/api/v1/entries/confirm", map[string]any{
		"entry_id":     uuid.NewString(),
		"transactions": []any{},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetEntry_InvalidID() {
	w := suite.do(http.MethodGet, "/api/v1/entries/not-a-uuid", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid entry ID", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestRejectEntry() {
	entry := &domain.Entry{EntryID: uuid.NewString(), UserID: suite.userID, Status: domain.EntryRejected}
	suite.mockEntry.On("RejectEntry", mock.Anything, suite.userID, entry.EntryID).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/"+entry.EntryID+"/reject", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.EntryRejected, body.Status)
}

func (suite *HandlerTestSuite) TestListTransactions_PassesQuery() {
	expected := dto.ListTransactionsParams{Sort: "amount", Order: "asc", Type: "expense,refund", Limit: 20, Offset: 40}
	suite.mockTransaction.On("ListTransactions", mock.Anything, suite.userID, expected).
		Return(&dto.ListTransactionsResponse{Items: []dto.TransactionResponse{}, Limit: 20, Offset: 40}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?sort=amount&order=asc&type=expense,refund&limit=20&offset=40", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTransaction.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_ValidationMessage() {
	msg := "unsupported sort field 'merchant'. Allowed: amount, category, occurred_time"
	suite.mockTransaction.On("ListTransactions", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.NewValidationError(msg)).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?sort=merchant", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(msg, suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestListTransactions_NonNumericLimit() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=lots", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTransaction() {
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        decimal.RequireFromString("99.5"),
		CurrencyCode:  "INR",
		Direction:     domain.Outflow,
		Type:          domain.Expense,
		Category:      "Health",
	}
	suite.mockTransaction.On("UpdateTransaction", mock.Anything, suite.userID, txn.TransactionID, mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
		return req.Category != nil && *req.Category == "Health" && req.Amount == nil
	})).Return(txn, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/transactions/"+txn.TransactionID, map[string]any{"category": "Health"})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("99.50", body.Amount)
}

func (suite *HandlerTestSuite) TestGetTransaction_InternalErrorIsHidden() {
	id := uuid.NewString()
	suite.mockTransaction.On("GetTransaction", mock.Anything, suite.userID, id).
		Return(nil, apperrors.NewAppError(500, "failed to find transaction by ID "+id, errors.New("conn refused"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/"+id, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to get transaction", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestSummary() {
	summary := &domain.MonthlySummary{
		Month:        "2026-03",
		TotalInflow:  decimal.RequireFromString("1000"),
		TotalOutflow: decimal.RequireFromString("250.5"),
		Net:          decimal.RequireFromString("749.5"),
		ByCategory: []domain.CategoryTotal{
			{Direction: domain.Outflow, Category: "Groceries", Total: decimal.RequireFromString("250.5"), Count: 2},
		},
		TransactionCount: 3,
	}
	suite.mockReporting.On("MonthlySummary", mock.Anything, suite.userID, "2026-03").Return(summary, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/summary?month=2026-03", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.MonthlySummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("749.50", body.Net)
	suite.Equal("250.50", body.ByCategory[0].Total)
	suite.Equal(3, body.TransactionCount)
}

func (suite *HandlerTestSuite) TestSummary_Month() {
	w := suite.do(http.MethodGet, "/api/v1/summary", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockReporting.On("MonthlySummary", mock.Anything, suite.userID, "2026-3").
		Return(nil, apperrors.NewValidationError("Invalid month format. Use YYYY-MM.")).Once()
	w = suite.do(http.MethodGet, "/api/v1/summary?month=2026-3", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid month format. Use YYYY-MM.", suite.errorMessage(w))
}
