package repositories

import (
	"context"
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger data.
type LedgerReader interface {
	// FindLedgerByID retrieves a non-deleted ledger visible to the owner
	// (owned by them or global). Returns apperrors.ErrNotFound otherwise.
	FindLedgerByID(ctx context.Context, ledgerID string, owner domain.OwnerID) (*domain.Ledger, error)

	// FindGlobalLedgerByName retrieves a global ledger by case-insensitive
	// name match. Used by the startup seeder for idempotence.
	FindGlobalLedgerByName(ctx context.Context, name string) (*domain.Ledger, error)

	// ListLedgers retrieves all non-deleted ledgers visible to the owner
	// (global plus owned), ordered by name. A global owner sees only the
	// shared catalog.
	ListLedgers(ctx context.Context, owner domain.OwnerID) ([]domain.Ledger, error)

	// FindMovementsByLedger retrieves every non-deleted movement touching the
	// ledger within the optional inclusive date bounds, scoped to the owner's
	// entries and ordered by (entry date, entry creation, line creation).
	FindMovementsByLedger(ctx context.Context, ledgerID string, owner domain.OwnerID, from, to *time.Time) ([]domain.Movement, error)

	// CountLinesReferencingLedger counts entry lines (deleted or not) that
	// reference the ledger on either side. Guards hard deletion.
	CountLinesReferencingLedger(ctx context.Context, ledgerID string) (int64, error)
}

// LedgerWriter defines write operations for ledger data.
type LedgerWriter interface {
	// SaveLedger persists a new ledger. A case-insensitive name collision
	// within the same (owner, parent) scope returns apperrors.ErrDuplicate.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error

	// SoftDeleteLedger marks an owned ledger deleted and bumps its watermark.
	// Global ledgers are unreachable through this path.
	SoftDeleteLedger(ctx context.Context, ledgerID string, owner domain.OwnerID, now time.Time) error

	// HardDeleteLedger physically removes an owned ledger row. Callers must
	// first verify nothing references it.
	HardDeleteLedger(ctx context.Context, ledgerID string, owner domain.OwnerID) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
