package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/spend_tracker_app/internal/apperrors"
	"github.com/SscSPs/spend_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/spend_tracker_app/internal/models"
	"github.com/SscSPs/spend_tracker_app/internal/utils/mapping"
	"github.com/SscSPs/spend_tracker_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, user_id, raw_text, source, status, occurred_at_hint, parser_output, parser_version, notes,
		       created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for entries and their confirmed transactions.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// SaveEntry inserts a new entry.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.RawText,
		m.Source,
		m.Status,
		m.OccurredAtHint,
		m.ParserOutput,
		m.ParserVersion,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}
	return nil
}

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.RawText,
		&m.Source,
		&m.Status,
		&m.OccurredAtHint,
		&m.ParserOutput,
		&m.ParserVersion,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// ListEntriesByUser returns one page of a user's entries, newest first.
func (r *PgxEntryRepository) ListEntriesByUser(ctx context.Context, userID string, page pagination.Params) ([]domain.Entry, int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE user_id = $1;`, userID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count entries for user "+userID, err)
	}

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC, entry_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query entries for user "+userID, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	return mapping.ToDomainEntries(entries), total, nil
}

// UpdateEntryStatus changes the status of an entry.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	return r.updateEntryStatus(ctx, r.Pool, entryID, status, updatedBy, updatedAt)
}

// execer is satisfied by both the pool and an open transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (r *PgxEntryRepository) updateEntryStatus(ctx context.Context, db execer, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4;
	`
	tag, err := db.Exec(ctx, query, string(status), updatedAt, updatedBy, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ConfirmEntry soft-deletes the entry's live transactions, inserts the given ones and
// marks the entry confirmed, all in one database transaction.
func (r *PgxEntryRepository) ConfirmEntry(ctx context.Context, entryID string, transactions []domain.Transaction, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	// 1. Retire whatever was confirmed before
	retireQuery := `
		UPDATE transactions
		SET is_deleted = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE entry_id = $3 AND is_deleted = FALSE;
	`
	if _, err := tx.Exec(ctx, retireQuery, updatedAt, updatedBy, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to retire transactions of entry "+entryID, err)
	}

	// 2. Insert the confirmed set
	batch := &pgx.Batch{}
	for _, txn := range transactions {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(insertTransactionQuery,
			m.TransactionID,
			m.EntryID,
			m.UserID,
			m.OccurredAt,
			m.Amount,
			m.CurrencyCode,
			m.Direction,
			m.Type,
			m.Category,
			m.Assumptions,
			m.NeedsConfirmation,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transactions for entry "+entryID, err)
	}

	// 3. Flip the entry status
	if err := r.updateEntryStatus(ctx, tx, entryID, domain.EntryConfirmed, updatedBy, updatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
