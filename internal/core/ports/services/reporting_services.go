package services

import (
	"context"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
)

// ReportingService defines operations for generating ledger reports
type ReportingService interface {
	// MonthlySummary totals the user's transactions for a YYYY-MM month (UTC).
	MonthlySummary(ctx context.Context, userID string, month string) (*domain.MonthlySummary, error)
}
