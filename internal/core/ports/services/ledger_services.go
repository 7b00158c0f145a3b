package services

import (
	"context"
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
)

// LedgerSvcFacade defines the ledger use cases exposed to the handlers.
type LedgerSvcFacade interface {
	// ListLedgers returns the owner's ledgers merged with the global catalog,
	// excluding soft-deleted rows.
	ListLedgers(ctx context.Context, owner domain.OwnerID) ([]domain.Ledger, error)

	// CreateLedger validates and persists a new owner-scoped ledger. The name
	// must not collide (case-insensitively) with another visible ledger under
	// the same parent.
	CreateLedger(ctx context.Context, owner domain.OwnerID, ledger domain.Ledger) (*domain.Ledger, error)

	// DeleteLedger soft-deletes an owned ledger, or removes the row entirely
	// when hard is true. Ledgers still referenced by entry lines cannot be
	// hard-deleted.
	DeleteLedger(ctx context.Context, owner domain.OwnerID, ledgerID string, hard bool) error

	// GetLedgerStatement builds the running-balance statement of a ledger over
	// an optional date range. An unknown ledger yields an empty statement, not
	// an error.
	GetLedgerStatement(ctx context.Context, owner domain.OwnerID, ledgerID string, from, to *time.Time) ([]domain.StatementLine, error)

	// EnsureDefaultLedgers seeds the global ledger catalog, skipping names
	// that already exist. Safe to call on every startup.
	EnsureDefaultLedgers(ctx context.Context) error
}
