package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledback/ledback_backend/internal/apperrors"
	"github.com/ledback/ledback_backend/internal/core/domain"
	portsrepo "github.com/ledback/ledback_backend/internal/core/ports/repositories"
	"github.com/ledback/ledback_backend/internal/models"
	"github.com/ledback/ledback_backend/internal/utils/mapping"
)

const entryColumns = `id, entry_date, voucher_type, narration, user_email, tags, created_at, updated_at, deleted_at`
const entryLineColumns = `id, entry_id, debit_ledger_id, credit_ledger_id, amount, narration, created_at, updated_at, deleted_at`

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.ID, &m.EntryDate, &m.VoucherType, &m.Narration, &m.UserEmail,
		&m.Tags, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	return m, err
}

func scanEntryLine(row pgx.Row) (models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.ID, &m.EntryID, &m.DebitLedgerID, &m.CreditLedgerID, &m.Amount,
		&m.Narration, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	return m, err
}

func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string, owner domain.OwnerID) (*domain.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM entries
		WHERE id = $1 AND user_email = $2 AND deleted_at IS NULL
	`, entryColumns)

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID, owner.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM entry_lines
		WHERE entry_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`, entryLineColumns)

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lineModels := []models.EntryLine{}
	for rows.Next() {
		m, err := scanEntryLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line row: %w", err)
		}
		lineModels = append(lineModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating entry line rows: %w", err)
	}

	return mapping.ToDomainEntryLineSlice(lineModels), nil
}

func (r *PgxEntryRepository) ListEntries(ctx context.Context, owner domain.OwnerID) ([]domain.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM entries
		WHERE user_email = $1 AND deleted_at IS NULL
		ORDER BY entry_date DESC, created_at DESC
	`, entryColumns)

	rows, err := r.Pool.Query(ctx, query, owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entryModels := []models.Entry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entryModels = append(entryModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating entry rows: %w", err)
	}

	return mapping.ToDomainEntrySlice(entryModels), nil
}

func (r *PgxEntryRepository) ListTransactions(ctx context.Context, owner domain.OwnerID) ([]domain.Transaction, error) {
	query := `
		SELECT
			el.id,
			e.id,
			e.entry_date,
			e.voucher_type,
			el.debit_ledger_id,
			el.credit_ledger_id,
			el.amount,
			COALESCE(el.narration, e.narration, ''),
			el.created_at
		FROM entry_lines el
		JOIN entries e ON e.id = el.entry_id AND e.deleted_at IS NULL
		WHERE el.deleted_at IS NULL AND e.user_email = $1
		ORDER BY e.entry_date ASC, el.created_at ASC
	`

	rows, err := r.Pool.Query(ctx, query, owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.LineID, &t.EntryID, &t.Date, &t.VoucherType, &t.DebitLedgerID, &t.CreditLedgerID, &t.Amount, &t.Narration, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}

	return txns, nil
}

// SaveEntryWithLines inserts the entry header and all lines atomically.
func (r *PgxEntryRepository) SaveEntryWithLines(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	entryModel := mapping.ToModelEntry(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO entries (id, entry_date, voucher_type, narration, user_email, tags, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, entryModel.ID, entryModel.EntryDate, entryModel.VoucherType, entryModel.Narration,
		entryModel.UserEmail, entryModel.Tags, entryModel.CreatedAt, entryModel.UpdatedAt, entryModel.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", entryModel.ID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelEntryLine(line)
		batch.Queue(`
			INSERT INTO entry_lines (id, entry_id, debit_ledger_id, credit_ledger_id, amount, narration, created_at, updated_at, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, m.ID, m.EntryID, m.DebitLedgerID, m.CreditLedgerID, m.Amount, m.Narration, m.CreatedAt, m.UpdatedAt, m.DeletedAt)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert entry line: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close line insert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// SoftDeleteEntry marks the entry and all of its lines deleted in one
// transaction, mirroring the cascade of the sync delete path.
func (r *PgxEntryRepository) SoftDeleteEntry(ctx context.Context, entryID string, owner domain.OwnerID, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	tag, err := tx.Exec(ctx, `
		UPDATE entries SET deleted_at = $3, updated_at = $3
		WHERE id = $1 AND user_email = $2 AND deleted_at IS NULL
	`, entryID, owner.String(), now)
	if err != nil {
		return fmt.Errorf("failed to soft-delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
	}

	_, err = tx.Exec(ctx, `
		UPDATE entry_lines SET deleted_at = $2, updated_at = $2
		WHERE entry_id = $1 AND deleted_at IS NULL
	`, entryID, now)
	if err != nil {
		return fmt.Errorf("failed to soft-delete lines of entry %s: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}
