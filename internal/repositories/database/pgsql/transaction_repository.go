package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/spend_tracker_app/internal/models"
	"github.com/SscSPs/spend_tracker_app/internal/utils/mapping"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, entry_id, user_id, occurred_at, amount, currency_code, direction, type, category,
		       assumptions, needs_confirmation, is_deleted, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, entry_id, user_id, occurred_at, amount, currency_code, direction, type, category,
		assumptions, needs_confirmation, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

// sortColumns maps API sort fields onto columns. Only these strings ever reach ORDER BY.
var sortColumns = map[domain.TransactionSortField]string{
	domain.SortByOccurredTime: "occurred_at",
	domain.SortByAmount:       "amount",
	domain.SortByCategory:     "category",
}

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.EntryID,
		&t.UserID,
		&t.OccurredAt,
		&t.Amount,
		&t.CurrencyCode,
		&t.Direction,
		&t.Type,
		&t.Category,
		&t.Assumptions,
		&t.NeedsConfirmation,
		&t.IsDeleted,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactions(transactions), nil
}

// FindTransactionByID retrieves a live transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND is_deleted = FALSE;`

	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(t)
	return &txn, nil
}

// FindTransactionsByEntryID retrieves the live transactions of an entry in occurrence order.
func (r *PgxTransactionRepository) FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE entry_id = $1 AND is_deleted = FALSE
		ORDER BY occurred_at, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for entry "+entryID, err)
	}
	return collectTransactions(rows)
}

// ListTransactions returns one filtered, sorted page of a user's live transactions.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, query domain.TransactionQuery, page pagination.Params) ([]domain.Transaction, int, error) {
	where, args := transactionFilter(userID, query)

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions for user "+userID, err)
	}

	sql, args := listTransactionsQuery(where, args, query, page)
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query transactions for user "+userID, err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// transactionFilter renders the WHERE clause for a query. Values are always bound as parameters.
func transactionFilter(userID string, q domain.TransactionQuery) (string, []any) {
	args := []any{userID}
	conds := []string{"user_id = $1", "is_deleted = FALSE"}
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if q.From != nil {
		add("occurred_at >= ?", *q.From)
	}
	if q.To != nil {
		add("occurred_at <= ?", *q.To)
	}
	if q.Direction != nil {
		add("direction = ?", string(*q.Direction))
	}
	if len(q.Types) > 0 {
		types := make([]string, len(q.Types))
		for i, t := range q.Types {
			types[i] = string(t)
		}
		add("type = ANY(?)", types)
	}
	if len(q.Categories) > 0 {
		add("category = ANY(?)", q.Categories)
	}
	if q.MinAmount != nil {
		add("amount >= ?", *q.MinAmount)
	}
	if q.MaxAmount != nil {
		add("amount <= ?", *q.MaxAmount)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// listTransactionsQuery appends ordering and paging to a filter built by transactionFilter.
func listTransactionsQuery(where string, args []any, q domain.TransactionQuery, page pagination.Params) (string, []any) {
	column, ok := sortColumns[q.SortField]
	if !ok {
		column = sortColumns[domain.SortByOccurredTime]
	}
	direction := "DESC"
	if q.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	out := make([]any, len(args), len(args)+2)
	copy(out, args)
	out = append(out, page.Limit, page.Offset)

	sql := `SELECT ` + transactionColumns + ` FROM transactions ` + where +
		` ORDER BY ` + column + ` ` + direction + `, created_at DESC, transaction_id` +
		` LIMIT $` + strconv.Itoa(len(out)-1) + ` OFFSET $` + strconv.Itoa(len(out)) + `;`
	return sql, out
}

// UpdateTransaction overwrites the editable fields of a live transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $1, currency_code = $2, direction = $3, type = $4, category = $5,
		    needs_confirmation = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $9 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Amount,
		m.CurrencyCode,
		m.Direction,
		m.Type,
		m.Category,
		m.NeedsConfirmation,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
