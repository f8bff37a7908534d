package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
)

const monthLayout = "2006-01"

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// MonthRange returns [first instant of month, first instant of next month) in UTC.
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// MonthlySummary totals a user's live transactions for one calendar month.
func (s *reportingService) MonthlySummary(ctx context.Context, userID string, month string) (*domain.MonthlySummary, error) {
	from, to, err := MonthRange(month)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid month format. Use YYYY-MM.")
	}

	rows, err := s.reportingRepo.GetCategoryTotals(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve category totals",
			slog.String("user_id", userID),
			slog.String("month", month))
		return nil, fmt.Errorf("failed to retrieve monthly summary data: %w", err)
	}

	summary := &domain.MonthlySummary{
		Month:        month,
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		ByCategory:   make([]domain.CategoryTotal, 0, len(rows)),
	}
	for _, row := range rows {
		switch row.Direction {
		case domain.Inflow:
			summary.TotalInflow = summary.TotalInflow.Add(row.Total)
		case domain.Outflow:
			summary.TotalOutflow = summary.TotalOutflow.Add(row.Total)
		}
		summary.TransactionCount += row.Count
		summary.ByCategory = append(summary.ByCategory, row)
	}
	summary.Net = summary.TotalInflow.Sub(summary.TotalOutflow)

	s.LogInfo(ctx, "Monthly summary generated",
		slog.String("month", month),
		slog.Int("category_rows", len(rows)))
	return summary, nil
}
