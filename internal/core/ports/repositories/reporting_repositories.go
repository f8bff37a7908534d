package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving aggregate ledger data
type ReportingRepository interface {
	// GetCategoryTotals sums live transactions in [from, to) grouped by direction and
	// category, ordered by direction then category.
	GetCategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error)
}
