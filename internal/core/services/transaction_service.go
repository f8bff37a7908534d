package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
)

type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
	now     func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, now: time.Now}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// ListTransactions validates the query parameters and returns one page of transactions.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	query, err := buildTransactionQuery(params)
	if err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), err)
	}
	page, err := pagination.New(params.Limit, params.Offset)
	if err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), err)
	}

	txns, total, err := s.txnRepo.ListTransactions(ctx, userID, query, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Items:      dto.ToTransactionResponses(txns),
		TotalCount: total,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}, nil
}

// buildTransactionQuery turns raw query-string values into a TransactionQuery.
func buildTransactionQuery(params dto.ListTransactionsParams) (domain.TransactionQuery, error) {
	query := domain.TransactionQuery{
		SortField: domain.SortByOccurredTime,
		SortOrder: domain.SortDesc,
	}

	if params.From != "" {
		from, err := time.Parse(time.DateOnly, params.From)
		if err != nil {
			return query, fmt.Errorf("from must be a YYYY-MM-DD date")
		}
		query.From = &from
	}
	if params.To != "" {
		day, err := time.Parse(time.DateOnly, params.To)
		if err != nil {
			return query, fmt.Errorf("to must be a YYYY-MM-DD date")
		}
		// Inclusive: everything up to the last instant of that day.
		to := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		query.To = &to
	}
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return query, fmt.Errorf("from must not be after to")
	}

	if params.Direction != "" {
		direction, ok := domain.ParseDirection(params.Direction)
		if !ok {
			return query, fmt.Errorf("direction must be inflow or outflow")
		}
		query.Direction = &direction
	}
	for _, raw := range splitList(params.Type) {
		t, ok := domain.ParseTransactionType(raw)
		if !ok {
			return query, fmt.Errorf("unsupported type %q", raw)
		}
		query.Types = append(query.Types, t)
	}
	query.Categories = splitList(params.Category)

	var err error
	if query.MinAmount, err = parseAmountFilter("min_amount", params.MinAmount); err != nil {
		return query, err
	}
	if query.MaxAmount, err = parseAmountFilter("max_amount", params.MaxAmount); err != nil {
		return query, err
	}
	if query.MinAmount != nil && query.MaxAmount != nil && query.MinAmount.GreaterThan(*query.MaxAmount) {
		return query, fmt.Errorf("min_amount must not exceed max_amount")
	}

	if params.Sort != "" {
		field := domain.TransactionSortField(strings.ToLower(strings.TrimSpace(params.Sort)))
		if !slices.Contains(domain.SortableTransactionFields, field) {
			allowed := make([]string, len(domain.SortableTransactionFields))
			for i, f := range domain.SortableTransactionFields {
				allowed[i] = string(f)
			}
			return query, fmt.Errorf("unsupported sort field '%s'. Allowed: %s", params.Sort, strings.Join(allowed, ", "))
		}
		query.SortField = field
	}
	switch order := domain.SortOrder(strings.ToLower(strings.TrimSpace(params.Order))); order {
	case "":
	case domain.SortAsc, domain.SortDesc:
		query.SortOrder = order
	default:
		return query, fmt.Errorf("order must be asc or desc")
	}

	return query, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseAmountFilter(name, raw string) (*decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &d, nil
}

// GetTransaction returns a live transaction owned by userID.
func (s *transactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		s.LogError(ctx, err, "Failed to load transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, apperrors.NewNotFoundError("transaction not found")
	}
	return txn, nil
}

// UpdateTransaction applies the provided fields. Values are validated, not repaired.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		amount := req.Amount.Round(2)
		if !amount.GreaterThan(decimal.Zero) {
			return nil, apperrors.NewValidationError("amount must be greater than 0")
		}
		txn.Amount = amount
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return nil, apperrors.NewValidationError("currency must be a 3-letter code")
		}
		txn.CurrencyCode = currency
	}
	if req.Direction != nil {
		direction, ok := domain.ParseDirection(*req.Direction)
		if !ok {
			return nil, apperrors.NewValidationError("direction must be inflow or outflow")
		}
		txn.Direction = direction
	}
	if req.Type != nil {
		t, ok := domain.ParseTransactionType(*req.Type)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported type %q", *req.Type))
		}
		txn.Type = t
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if !domain.IsAllowedCategory(category) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported category %q", *req.Category))
		}
		txn.Category = category
	}

	txn.LastUpdatedAt = s.now().UTC()
	txn.LastUpdatedBy = userID
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}
