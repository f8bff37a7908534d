package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
)

var (
	ErrEntryRejected  = errors.New("rejected entries cannot be confirmed")
	ErrEntryConfirmed = errors.New("confirmed entries cannot be rejected")
	ErrEmptyRawText   = errors.New("raw_text must not be blank")
)

// entryService handles the parse → preview → confirm lifecycle of entries.
type entryService struct {
	BaseService
	entryRepo portsrepo.EntryRepositoryWithTx
	parser    portssvc.ParserSvc
	now       func() time.Time
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithEntryClock overrides the clock used for timestamps and parse reference times.
func WithEntryClock(now func() time.Time) EntryServiceOption {
	return func(s *entryService) {
		s.now = now
	}
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryWithTx, parser portssvc.ParserSvc, options ...EntryServiceOption) portssvc.EntrySvcFacade {
	svc := &entryService{
		entryRepo: entryRepo,
		parser:    parser,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// ParseEntry parses raw text and stores the result as an entry awaiting confirmation.
func (s *entryService) ParseEntry(ctx context.Context, userID string, req dto.ParseRequest) (*dto.ParseResponse, error) {
	if strings.TrimSpace(req.RawText) == "" {
		return nil, apperrors.NewAppError(400, ErrEmptyRawText.Error(), ErrEmptyRawText)
	}

	now := s.now().UTC()
	reference := now
	if req.OccurredAtHint != nil {
		reference = *req.OccurredAtHint
	}

	result, err := s.parser.Parse(ctx, req.RawText, reference)
	if err != nil {
		return nil, err
	}
	if result.Preview.OccurredAt == nil && req.OccurredAtHint != nil {
		hint := *req.OccurredAtHint
		result.Preview.OccurredAt = &hint
	}

	parserOutput, err := marshalParserOutput(result)
	if err != nil {
		return nil, err
	}

	version := result.ParserVersion
	entry := domain.Entry{
		EntryID:       uuid.NewString(),
		UserID:        userID,
		RawText:       req.RawText,
		Source:        domain.SourceManualText,
		Status:        domain.EntryPendingConfirmation,
		OccurredHint:  req.OccurredAtHint,
		ParserOutput:  parserOutput,
		ParserVersion: &version,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save parsed entry", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Entry parsed",
		slog.String("entry_id", entry.EntryID),
		slog.Int("transaction_count", len(result.Preview.Transactions)),
		slog.Bool("needs_confirmation", result.Preview.NeedsConfirmation))

	return &dto.ParseResponse{
		EntryID:               entry.EntryID,
		Status:                entry.Status,
		ParserVersion:         version,
		NormalizedEntryResult: result.Preview,
	}, nil
}

// ConfirmEntry swaps the entry's transactions for the user's confirmed ones.
func (s *entryService) ConfirmEntry(ctx context.Context, userID string, req dto.ConfirmEntryRequest) (*dto.ConfirmEntryResponse, error) {
	entry, err := s.GetEntry(ctx, userID, req.EntryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.EntryRejected {
		return nil, apperrors.NewAppError(400, ErrEntryRejected.Error(), ErrEntryRejected)
	}
	if len(req.Transactions) == 0 {
		return nil, apperrors.NewValidationError("at least one transaction is required")
	}

	now := s.now().UTC()
	txns := make([]domain.Transaction, 0, len(req.Transactions))
	for i, input := range req.Transactions {
		txn, err := confirmedTransaction(input)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("transactions[%d]: %s", i, err.Error()))
		}
		txn.TransactionID = uuid.NewString()
		txn.EntryID = entry.EntryID
		txn.UserID = userID
		txn.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		txns = append(txns, txn)
	}

	if err := s.entryRepo.ConfirmEntry(ctx, entry.EntryID, txns, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to confirm entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to confirm entry: %w", err)
	}

	entry.Status = domain.EntryConfirmed
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Entry confirmed", slog.String("entry_id", entry.EntryID), slog.Int("transaction_count", len(txns)))
	return &dto.ConfirmEntryResponse{
		Entry:        dto.ToEntryResponse(entry),
		Transactions: dto.ToTransactionResponses(txns),
	}, nil
}

// confirmedTransaction validates one user-supplied transaction. Unlike the parser
// preview nothing is repaired here: the user has the final word, so bad values are errors.
func confirmedTransaction(input dto.ConfirmTransactionInput) (domain.Transaction, error) {
	if input.OccurredAt.IsZero() {
		return domain.Transaction{}, errors.New("occurred_at is required")
	}
	amount := input.Amount.Round(2)
	if !amount.GreaterThan(decimal.Zero) {
		return domain.Transaction{}, errors.New("amount must be greater than 0")
	}
	direction, ok := domain.ParseDirection(input.Direction)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("direction %q is not one of inflow, outflow", input.Direction)
	}
	txType, ok := domain.ParseTransactionType(input.Type)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("type %q is not supported", input.Type)
	}
	category := strings.TrimSpace(input.Category)
	if !domain.IsAllowedCategory(category) {
		return domain.Transaction{}, fmt.Errorf("category %q is not supported", input.Category)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	assumptions := input.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}
	return domain.Transaction{
		OccurredAt:        input.OccurredAt.UTC(),
		Amount:            amount,
		CurrencyCode:      currency,
		Direction:         direction,
		Type:              txType,
		Category:          category,
		Assumptions:       assumptions,
		NeedsConfirmation: input.NeedsConfirmation,
	}, nil
}

// RejectEntry marks an entry as rejected. Rejecting twice is a no-op.
func (s *entryService) RejectEntry(ctx context.Context, userID string, entryID string) (*domain.Entry, error) {
	entry, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	switch entry.Status {
	case domain.EntryRejected:
		return entry, nil
	case domain.EntryConfirmed:
		return nil, apperrors.NewAppError(400, ErrEntryConfirmed.Error(), ErrEntryConfirmed)
	}

	now := s.now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.EntryRejected, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reject entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to reject entry: %w", err)
	}
	entry.Status = domain.EntryRejected
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// GetEntry returns an entry owned by userID. Entries of other users are reported as not found.
func (s *entryService) GetEntry(ctx context.Context, userID string, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("entry not found")
		}
		s.LogError(ctx, err, "Failed to load entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	if entry.UserID != userID {
		s.LogDebug(ctx, "Entry belongs to another user", slog.String("entry_id", entryID))
		return nil, apperrors.NewNotFoundError("entry not found")
	}
	return entry, nil
}

// ListEntries returns a page of the user's entries, newest first.
func (s *entryService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	page, err := pagination.New(params.Limit, params.Offset)
	if err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), err)
	}
	entries, total, err := s.entryRepo.ListEntriesByUser(ctx, userID, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return &dto.ListEntriesResponse{
		Items:      dto.ToEntryResponses(entries),
		TotalCount: total,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}, nil
}
