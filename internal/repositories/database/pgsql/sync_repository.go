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

type PgxSyncRepository struct {
	BaseRepository
}

func newPgxSyncRepository(pool *pgxpool.Pool) portsrepo.SyncRepository {
	return &PgxSyncRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncRepository = (*PgxSyncRepository)(nil)

// PullChanges gathers the owner's delta since the watermark: changed rows per
// entity ordered by updated_at, tombstones ordered by deleted_at. Entry lines
// are scoped through their parent entry's ownership.
func (r *PgxSyncRepository) PullChanges(ctx context.Context, owner domain.OwnerID, since time.Time) (*domain.SyncDelta, error) {
	email := owner.String()
	delta := &domain.SyncDelta{}

	ledgerQuery := fmt.Sprintf(`
		SELECT %s FROM ledgers
		WHERE (user_email = $1 OR user_email IS NULL)
		  AND updated_at > $2
		  AND deleted_at IS NULL
		ORDER BY updated_at ASC
	`, ledgerColumns)
	rows, err := r.Pool.Query(ctx, ledgerQuery, email, since)
	if err != nil {
		return nil, fmt.Errorf("failed to pull changed ledgers: %w", err)
	}
	ledgerModels := []models.Ledger{}
	for rows.Next() {
		m, err := scanLedger(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan pulled ledger: %w", err)
		}
		ledgerModels = append(ledgerModels, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating pulled ledgers: %w", err)
	}
	delta.Ledgers = mapping.ToDomainLedgerSlice(ledgerModels)

	entryQuery := fmt.Sprintf(`
		SELECT %s FROM entries
		WHERE user_email = $1
		  AND updated_at > $2
		  AND deleted_at IS NULL
		ORDER BY updated_at ASC
	`, entryColumns)
	rows, err = r.Pool.Query(ctx, entryQuery, email, since)
	if err != nil {
		return nil, fmt.Errorf("failed to pull changed entries: %w", err)
	}
	entryModels := []models.Entry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan pulled entry: %w", err)
		}
		entryModels = append(entryModels, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating pulled entries: %w", err)
	}
	delta.Entries = mapping.ToDomainEntrySlice(entryModels)

	lineQuery := `
		SELECT l.id, l.entry_id, l.debit_ledger_id, l.credit_ledger_id, l.amount,
		       l.narration, l.created_at, l.updated_at, l.deleted_at
		FROM entry_lines l
		JOIN entries e ON e.id = l.entry_id
		WHERE e.user_email = $1
		  AND e.deleted_at IS NULL
		  AND l.updated_at > $2
		  AND l.deleted_at IS NULL
		ORDER BY l.updated_at ASC
	`
	rows, err = r.Pool.Query(ctx, lineQuery, email, since)
	if err != nil {
		return nil, fmt.Errorf("failed to pull changed entry lines: %w", err)
	}
	lineModels := []models.EntryLine{}
	for rows.Next() {
		m, err := scanEntryLine(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan pulled entry line: %w", err)
		}
		lineModels = append(lineModels, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating pulled entry lines: %w", err)
	}
	delta.EntryLines = mapping.ToDomainEntryLineSlice(lineModels)

	delta.Deleted.Ledgers, err = r.queryTombstones(ctx, `
		SELECT id, deleted_at, updated_at
		FROM ledgers
		WHERE user_email = $1 AND deleted_at IS NOT NULL AND deleted_at > $2
		ORDER BY deleted_at ASC
	`, email, since)
	if err != nil {
		return nil, fmt.Errorf("failed to pull ledger tombstones: %w", err)
	}

	delta.Deleted.Entries, err = r.queryTombstones(ctx, `
		SELECT id, deleted_at, updated_at
		FROM entries
		WHERE user_email = $1 AND deleted_at IS NOT NULL AND deleted_at > $2
		ORDER BY deleted_at ASC
	`, email, since)
	if err != nil {
		return nil, fmt.Errorf("failed to pull entry tombstones: %w", err)
	}

	delta.Deleted.EntryLines, err = r.queryTombstones(ctx, `
		SELECT l.id, l.deleted_at, l.updated_at
		FROM entry_lines l
		JOIN entries e ON e.id = l.entry_id
		WHERE e.user_email = $1 AND l.deleted_at IS NOT NULL AND l.deleted_at > $2
		ORDER BY l.deleted_at ASC
	`, email, since)
	if err != nil {
		return nil, fmt.Errorf("failed to pull entry line tombstones: %w", err)
	}

	return delta, nil
}

func (r *PgxSyncRepository) queryTombstones(ctx context.Context, query, email string, since time.Time) ([]domain.Tombstone, error) {
	rows, err := r.Pool.Query(ctx, query, email, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tombstones := []domain.Tombstone{}
	for rows.Next() {
		var t domain.Tombstone
		if err := rows.Scan(&t.ID, &t.DeletedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tombstones = append(tombstones, t)
	}
	return tombstones, rows.Err()
}

// ApplyPushBatch applies the whole batch in one transaction. Each upsert locks
// the existing row, lets the resolver pick the surviving revision, and always
// clears deleted_at (an upsert revives a tombstoned row). Deletes are
// dispatched by table name and are idempotent for rows already gone.
func (r *PgxSyncRepository) ApplyPushBatch(ctx context.Context, owner domain.OwnerID, batch domain.PushBatch, resolve domain.ConflictResolver, now time.Time) error {
	email := owner.String()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	for _, incoming := range batch.Ledgers {
		if err := r.upsertLedger(ctx, tx, incoming, resolve); err != nil {
			return err
		}
	}

	for _, incoming := range batch.Entries {
		if err := r.upsertEntry(ctx, tx, incoming, resolve); err != nil {
			return err
		}
	}

	for _, incoming := range batch.EntryLines {
		if err := r.upsertEntryLine(ctx, tx, email, incoming, resolve); err != nil {
			return err
		}
	}

	for _, del := range batch.Deletes {
		deletedAt := now
		if del.DeletedAt != nil {
			deletedAt = *del.DeletedAt
		}
		if err := r.applyDelete(ctx, tx, email, del, deletedAt, now); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSyncRepository) upsertLedger(ctx context.Context, tx pgx.Tx, incoming domain.Ledger, resolve domain.ConflictResolver) error {
	query := fmt.Sprintf(`SELECT %s FROM ledgers WHERE id = $1 FOR UPDATE`, ledgerColumns)
	existingModel, err := scanLedger(tx.QueryRow(ctx, query, incoming.LedgerID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to lock ledger %s: %w", incoming.LedgerID, err)
		}
		m := mapping.ToModelLedger(incoming)
		_, err := tx.Exec(ctx, `
			INSERT INTO ledgers (id, name, group_name, nature, is_party, is_group, category_ledger_id, user_email, created_at, updated_at, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL)
		`, m.ID, m.Name, m.GroupName, m.Nature, m.IsParty, m.IsGroup, m.CategoryLedgerID, m.UserEmail, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert pushed ledger %s: %w", m.ID, err)
		}
		return nil
	}

	resolved := resolve.Ledger(mapping.ToDomainLedger(existingModel), incoming)
	resolved.DeletedAt = nil

	m := mapping.ToModelLedger(resolved)
	_, err = tx.Exec(ctx, `
		UPDATE ledgers SET
			name = $2, group_name = $3, nature = $4, is_party = $5, is_group = $6,
			category_ledger_id = $7, user_email = $8, updated_at = $9, deleted_at = NULL
		WHERE id = $1
	`, m.ID, m.Name, m.GroupName, m.Nature, m.IsParty, m.IsGroup, m.CategoryLedgerID, m.UserEmail, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update pushed ledger %s: %w", m.ID, err)
	}
	return nil
}

func (r *PgxSyncRepository) upsertEntry(ctx context.Context, tx pgx.Tx, incoming domain.Entry, resolve domain.ConflictResolver) error {
	query := fmt.Sprintf(`SELECT %s FROM entries WHERE id = $1 FOR UPDATE`, entryColumns)
	existingModel, err := scanEntry(tx.QueryRow(ctx, query, incoming.EntryID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to lock entry %s: %w", incoming.EntryID, err)
		}
		m := mapping.ToModelEntry(incoming)
		_, err := tx.Exec(ctx, `
			INSERT INTO entries (id, entry_date, voucher_type, narration, user_email, tags, created_at, updated_at, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)
		`, m.ID, m.EntryDate, m.VoucherType, m.Narration, m.UserEmail, m.Tags, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert pushed entry %s: %w", m.ID, err)
		}
		return nil
	}

	resolved := resolve.Entry(mapping.ToDomainEntry(existingModel), incoming)
	resolved.DeletedAt = nil

	m := mapping.ToModelEntry(resolved)
	_, err = tx.Exec(ctx, `
		UPDATE entries SET
			entry_date = $2, voucher_type = $3, narration = $4, user_email = $5,
			tags = $6, updated_at = $7, deleted_at = NULL
		WHERE id = $1
	`, m.ID, m.EntryDate, m.VoucherType, m.Narration, m.UserEmail, m.Tags, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update pushed entry %s: %w", m.ID, err)
	}
	return nil
}

func (r *PgxSyncRepository) upsertEntryLine(ctx context.Context, tx pgx.Tx, email string, incoming domain.EntryLine, resolve domain.ConflictResolver) error {
	// The parent entry must already be the pusher's, possibly created earlier
	// in this same transaction.
	var one int
	err := tx.QueryRow(ctx, `
		SELECT 1 FROM entries WHERE id = $1 AND user_email = $2 AND deleted_at IS NULL
	`, incoming.EntryID, email).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: entry line %s refers to missing or unauthorized entry %s", apperrors.ErrForbidden, incoming.LineID, incoming.EntryID)
		}
		return fmt.Errorf("failed to check parent entry %s: %w", incoming.EntryID, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM entry_lines WHERE id = $1 FOR UPDATE`, entryLineColumns)
	existingModel, err := scanEntryLine(tx.QueryRow(ctx, query, incoming.LineID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to lock entry line %s: %w", incoming.LineID, err)
		}
		m := mapping.ToModelEntryLine(incoming)
		_, err := tx.Exec(ctx, `
			INSERT INTO entry_lines (id, entry_id, debit_ledger_id, credit_ledger_id, amount, narration, created_at, updated_at, deleted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)
		`, m.ID, m.EntryID, m.DebitLedgerID, m.CreditLedgerID, m.Amount, m.Narration, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert pushed entry line %s: %w", m.ID, err)
		}
		return nil
	}

	resolved := resolve.EntryLine(mapping.ToDomainEntryLine(existingModel), incoming)
	resolved.DeletedAt = nil

	m := mapping.ToModelEntryLine(resolved)
	_, err = tx.Exec(ctx, `
		UPDATE entry_lines SET
			entry_id = $2, debit_ledger_id = $3, credit_ledger_id = $4, amount = $5,
			narration = $6, updated_at = $7, deleted_at = NULL
		WHERE id = $1
	`, m.ID, m.EntryID, m.DebitLedgerID, m.CreditLedgerID, m.Amount, m.Narration, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update pushed entry line %s: %w", m.ID, err)
	}
	return nil
}

func (r *PgxSyncRepository) applyDelete(ctx context.Context, tx pgx.Tx, email string, del domain.DeleteOp, deletedAt, now time.Time) error {
	switch del.Table {
	case "entries":
		_, err := tx.Exec(ctx, `
			UPDATE entries SET deleted_at = $1, updated_at = $2
			WHERE id = $3 AND user_email = $4
		`, deletedAt, now, del.ID, email)
		if err != nil {
			return fmt.Errorf("failed to delete pushed entry %s: %w", del.ID, err)
		}
		_, err = tx.Exec(ctx, `
			UPDATE entry_lines SET deleted_at = $1, updated_at = $2
			WHERE entry_id = $3
		`, deletedAt, now, del.ID)
		if err != nil {
			return fmt.Errorf("failed to cascade delete to lines of entry %s: %w", del.ID, err)
		}

	case "ledgers":
		_, err := tx.Exec(ctx, `
			UPDATE ledgers SET deleted_at = $1, updated_at = $2
			WHERE id = $3 AND user_email = $4
		`, deletedAt, now, del.ID, email)
		if err != nil {
			return fmt.Errorf("failed to delete pushed ledger %s: %w", del.ID, err)
		}

	case "entry_lines":
		var one int
		err := tx.QueryRow(ctx, `
			SELECT 1
			FROM entry_lines l
			JOIN entries e ON e.id = l.entry_id
			WHERE l.id = $1 AND e.user_email = $2
		`, del.ID, email).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: entry line %s is not deletable by caller", apperrors.ErrForbidden, del.ID)
			}
			return fmt.Errorf("failed to check entry line %s ownership: %w", del.ID, err)
		}
		_, err = tx.Exec(ctx, `
			UPDATE entry_lines SET deleted_at = $1, updated_at = $2
			WHERE id = $3
		`, deletedAt, now, del.ID)
		if err != nil {
			return fmt.Errorf("failed to delete pushed entry line %s: %w", del.ID, err)
		}

	default:
		return fmt.Errorf("%w: unsupported delete table %q", apperrors.ErrValidation, del.Table)
	}
	return nil
}
