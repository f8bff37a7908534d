package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	"github.com/SscSPs/spend_tracker_app/internal/core/postprocess"
	"github.com/SscSPs/spend_tracker_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var referenceTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestParserService_Parse_Success(t *testing.T) {
	client := new(MockLLMClient)
	payload := []byte(`{
		"entry_summary": "Dinner",
		"occurred_at": "2026-03-13",
		"transactions": [
			{"amount": 900, "direction": "outflow", "type": "expense", "category": "Food & Drinks"}
		],
		"needs_confirmation": false,
		"assumptions": []
	}`)
	client.On("Parse", mock.Anything, "Split among 3 people, dinner 900", "2026-03-14T09:30:00Z").Return(payload, nil).Once()

	svc := services.NewParserService(client, services.WithParserVersion("test-v2"))
	result, err := svc.Parse(context.Background(), "Split among 3 people, dinner 900", referenceTime)

	require.NoError(t, err)
	assert.Equal(t, "test-v2", result.ParserVersion)
	assert.JSONEq(t, string(payload), string(result.RawOutput))

	preview := result.Preview
	require.Len(t, preview.Transactions, 1)
	txn := preview.Transactions[0]
	assert.True(t, decimal.RequireFromString("300").Equal(txn.Amount))
	assert.Equal(t, domain.DefaultCurrency, txn.Currency)
	assert.Equal(t, []string{"Split assumed 3 people."}, txn.Assumptions)
	assert.True(t, preview.NeedsConfirmation)
	require.NotNil(t, preview.OccurredAt)
	assert.Equal(t, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), *preview.OccurredAt)
	client.AssertExpectations(t)
}

func TestParserService_Parse_EmptyTransactions(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Parse", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte(`{"transactions": [], "assumptions": ["No amount found."]}`), nil).Once()

	result, err := services.NewParserService(client).Parse(context.Background(), "hello", referenceTime)

	require.NoError(t, err)
	assert.Equal(t, services.DefaultParserVersion, result.ParserVersion)
	assert.Empty(t, result.Preview.Transactions)
	assert.True(t, result.Preview.NeedsConfirmation)
	assert.Equal(t, []string{"No amount found."}, result.Preview.Assumptions)
}

func TestParserService_Parse_RepairsSemanticProblems(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Parse", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte(`{"transactions": [{"amount": -50, "currency": "USD", "direction": "sideways", "type": "random", "category": "MadeUp", "needs_confirmation": false, "assumptions": []}]}`), nil).Once()

	result, err := services.NewParserService(client).Parse(context.Background(), "refund?", referenceTime)

	require.NoError(t, err)
	txn := result.Preview.Transactions[0]
	assert.Equal(t, "USD", txn.Currency)
	assert.Equal(t, domain.OtherType, txn.Type)
	assert.Equal(t, domain.Outflow, txn.Direction)
	assert.Equal(t, domain.CategoryOther, txn.Category)
	assert.Equal(t, []string{
		postprocess.AssumptionNonPositiveAmount,
		postprocess.AssumptionUnknownType,
		postprocess.AssumptionInvalidDirection,
		postprocess.AssumptionCategoryOther,
	}, txn.Assumptions)
}

func TestParserService_Parse_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		llmErr  error
	}{
		{name: "client error", llmErr: errors.New("503 from provider")},
		{name: "not json", payload: `this is not json`},
		{name: "unknown top-level field", payload: `{"transactions": [], "confidence": 0.9}`},
		{name: "unknown transaction field", payload: `{"transactions": [{"amount": 1, "direction": "outflow", "type": "expense", "category": "Other", "merchant": "x"}]}`},
		{name: "missing direction", payload: `{"transactions": [{"amount": 1, "type": "expense", "category": "Other"}]}`},
		{name: "null amount", payload: `{"transactions": [{"amount": null, "direction": "outflow", "type": "expense", "category": "Other"}]}`},
		{name: "non-numeric amount string", payload: `{"transactions": [{"amount": "twelve", "direction": "outflow", "type": "expense", "category": "Other"}]}`},
		{name: "non-finite amount string", payload: `{"transactions": [{"amount": "NaN", "direction": "outflow", "type": "expense", "category": "Other"}]}`},
		{name: "null reply", payload: `null`},
		{name: "array reply", payload: `[{"transactions": []}]`},
		{name: "null transactions", payload: `{"transactions": null}`},
		{name: "null top-level flag", payload: `{"transactions": [], "needs_confirmation": null}`},
		{name: "null assumption item", payload: `{"transactions": [], "assumptions": ["ok", null]}`},
		{name: "null transaction", payload: `{"transactions": [null]}`},
		{name: "null currency", payload: `{"transactions": [{"amount": 1, "currency": null, "direction": "outflow", "type": "expense", "category": "Other"}]}`},
		{name: "null transaction assumptions", payload: `{"transactions": [{"amount": 1, "direction": "outflow", "type": "expense", "category": "Other", "assumptions": null}]}`},
		{name: "bad occurred_at", payload: `{"occurred_at": "last tuesday", "transactions": []}`},
		{name: "trailing data", payload: `{"transactions": []} {"transactions": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockLLMClient)
			if tt.llmErr != nil {
				client.On("Parse", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.llmErr).Once()
			} else {
				client.On("Parse", mock.Anything, mock.Anything, mock.Anything).Return([]byte(tt.payload), nil).Once()
			}

			result, err := services.NewParserService(client).Parse(context.Background(), "coffee 10", referenceTime)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUpstream)
			var parserErr *services.ParserError
			assert.ErrorAs(t, err, &parserErr)
		})
	}
}

func TestParserService_Parse_AmountAsNumericString(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Parse", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte(`{"entry_summary": null, "occurred_at": null, "transactions": [{"amount": " 120.5 ", "direction": "outflow", "type": "expense", "category": "Groceries"}]}`), nil).Once()

	result, err := services.NewParserService(client).Parse(context.Background(), "veggies 120.5", referenceTime)

	require.NoError(t, err)
	require.Len(t, result.Preview.Transactions, 1)
	assert.True(t, decimal.RequireFromString("120.50").Equal(result.Preview.Transactions[0].Amount))
	assert.Nil(t, result.Preview.EntrySummary)
	assert.Nil(t, result.Preview.OccurredAt)
}

func TestParserService_Parse_NoClient(t *testing.T) {
	_, err := services.NewParserService(nil).Parse(context.Background(), "coffee 10", referenceTime)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
