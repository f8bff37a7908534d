package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetCategoryTotals sums live transactions in [from, to) per direction and category.
func (r *reportingRepository) GetCategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT
			direction,
			category,
			COALESCE(SUM(amount), 0) AS total,
			COUNT(*) AS txn_count
		FROM transactions
		WHERE user_id = $1
			AND is_deleted = FALSE
			AND occurred_at >= $2
			AND occurred_at < $3
		GROUP BY direction, category
		ORDER BY direction, category
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		var direction string
		var count int64

		if err := rows.Scan(&direction, &row.Category, &row.Total, &count); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}

		row.Direction = domain.Direction(direction)
		row.Count = int(count)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}

	return result, nil
}
