package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledback/ledback_backend/internal/apperrors"
	"github.com/ledback/ledback_backend/internal/core/domain"
	portsrepo "github.com/ledback/ledback_backend/internal/core/ports/repositories"
	"github.com/ledback/ledback_backend/internal/models"
	"github.com/ledback/ledback_backend/internal/utils/mapping"
)

const ledgerColumns = `id, name, group_name, nature, is_party, is_group, category_ledger_id, user_email, created_at, updated_at, deleted_at`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedger(row pgx.Row) (models.Ledger, error) {
	var m models.Ledger
	err := row.Scan(
		&m.ID, &m.Name, &m.GroupName, &m.Nature, &m.IsParty, &m.IsGroup,
		&m.CategoryLedgerID, &m.UserEmail, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	return m, err
}

func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string, owner domain.OwnerID) (*domain.Ledger, error) {
	// A NULL owner parameter matches only the global catalog, which is
	// exactly what anonymous callers should see.
	query := fmt.Sprintf(`
		SELECT %s FROM ledgers
		WHERE id = $1 AND deleted_at IS NULL
		  AND (user_email IS NULL OR user_email = $2)
	`, ledgerColumns)

	m, err := scanLedger(r.Pool.QueryRow(ctx, query, ledgerID, mapping.ToNullableOwner(owner)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ledger %s not found", ledgerID))
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}

	ledger := mapping.ToDomainLedger(m)
	return &ledger, nil
}

func (r *PgxLedgerRepository) FindGlobalLedgerByName(ctx context.Context, name string) (*domain.Ledger, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM ledgers
		WHERE lower(name) = lower($1) AND user_email IS NULL AND deleted_at IS NULL
		LIMIT 1
	`, ledgerColumns)

	m, err := scanLedger(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("global ledger %q not found", name))
		}
		return nil, fmt.Errorf("failed to find global ledger %q: %w", name, err)
	}

	ledger := mapping.ToDomainLedger(m)
	return &ledger, nil
}

func (r *PgxLedgerRepository) ListLedgers(ctx context.Context, owner domain.OwnerID) ([]domain.Ledger, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM ledgers
		WHERE deleted_at IS NULL
		  AND (user_email IS NULL OR user_email = $1)
		ORDER BY name ASC
	`, ledgerColumns)

	rows, err := r.Pool.Query(ctx, query, mapping.ToNullableOwner(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	defer rows.Close()

	ledgerModels := []models.Ledger{}
	for rows.Next() {
		m, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledgerModels = append(ledgerModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating ledger rows: %w", err)
	}

	return mapping.ToDomainLedgerSlice(ledgerModels), nil
}

// FindMovementsByLedger returns the statement source rows: every non-deleted
// line touching the ledger within the owner's entries, viewed from the
// ledger's side, in deterministic replay order.
func (r *PgxLedgerRepository) FindMovementsByLedger(ctx context.Context, ledgerID string, owner domain.OwnerID, from, to *time.Time) ([]domain.Movement, error) {
	query := `
		SELECT
			e.id,
			e.entry_date,
			e.voucher_type,
			COALESCE(el.narration, e.narration, ''),
			CASE WHEN el.debit_ledger_id = $1 THEN el.credit_ledger_id ELSE el.debit_ledger_id END,
			COALESCE(ol.name, ''),
			CASE WHEN el.debit_ledger_id = $1 THEN el.amount ELSE 0 END,
			CASE WHEN el.credit_ledger_id = $1 THEN el.amount ELSE 0 END
		FROM entry_lines el
		JOIN entries e ON e.id = el.entry_id AND e.deleted_at IS NULL
		LEFT JOIN ledgers ol
			ON ol.id = CASE WHEN el.debit_ledger_id = $1 THEN el.credit_ledger_id ELSE el.debit_ledger_id END
		WHERE el.deleted_at IS NULL
		  AND (el.debit_ledger_id = $1 OR el.credit_ledger_id = $1)
		  AND e.user_email = $2
		  AND ($3::date IS NULL OR e.entry_date >= $3)
		  AND ($4::date IS NULL OR e.entry_date <= $4)
		ORDER BY e.entry_date ASC, e.created_at ASC, el.created_at ASC
	`

	rows, err := r.Pool.Query(ctx, query, ledgerID, mapping.ToNullableOwner(owner), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for ledger %s: %w", ledgerID, err)
	}
	defer rows.Close()

	movements := []domain.Movement{}
	for rows.Next() {
		var m domain.Movement
		if err := rows.Scan(&m.EntryID, &m.Date, &m.VoucherType, &m.Narration, &m.OtherLedgerID, &m.OtherLedgerName, &m.Debit, &m.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating movement rows: %w", err)
	}

	return movements, nil
}

func (r *PgxLedgerRepository) CountLinesReferencingLedger(ctx context.Context, ledgerID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM entry_lines
		WHERE debit_ledger_id = $1 OR credit_ledger_id = $1
	`, ledgerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lines referencing ledger %s: %w", ledgerID, err)
	}
	return count, nil
}

func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	m := mapping.ToModelLedger(ledger)

	query := `
		INSERT INTO ledgers (id, name, group_name, nature, is_party, is_group, category_ledger_id, user_email, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID, m.Name, m.GroupName, m.Nature, m.IsParty, m.IsGroup,
		m.CategoryLedgerID, m.UserEmail, m.CreatedAt, m.UpdatedAt, m.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: ledger named %q already exists in this scope", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save ledger %s: %w", m.ID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) SoftDeleteLedger(ctx context.Context, ledgerID string, owner domain.OwnerID, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE ledgers SET deleted_at = $3, updated_at = $3
		WHERE id = $1 AND user_email = $2 AND deleted_at IS NULL
	`, ledgerID, owner.String(), now)
	if err != nil {
		return fmt.Errorf("failed to soft-delete ledger %s: %w", ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("ledger %s not found", ledgerID))
	}
	return nil
}

func (r *PgxLedgerRepository) HardDeleteLedger(ctx context.Context, ledgerID string, owner domain.OwnerID) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM ledgers WHERE id = $1 AND user_email = $2
	`, ledgerID, owner.String())
	if err != nil {
		return fmt.Errorf("failed to hard-delete ledger %s: %w", ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("ledger %s not found", ledgerID))
	}
	return nil
}
