package repositories

import (
	"context"
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
)

// EntryReader defines read operations for entries and their lines.
type EntryReader interface {
	// FindEntryByID retrieves a non-deleted entry owned by the given owner.
	FindEntryByID(ctx context.Context, entryID string, owner domain.OwnerID) (*domain.Entry, error)

	// FindLinesByEntryID retrieves the non-deleted lines of an entry,
	// ordered by creation time.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// ListEntries retrieves the owner's non-deleted entry headers, newest
	// first (entry date desc, created_at desc).
	ListEntries(ctx context.Context, owner domain.OwnerID) ([]domain.Entry, error)

	// ListTransactions retrieves the owner's flattened movement view in
	// chronological replay order (entry date asc, line created_at asc).
	ListTransactions(ctx context.Context, owner domain.OwnerID) ([]domain.Transaction, error)
}

// EntryWriter defines write operations for entries and their lines.
type EntryWriter interface {
	// SaveEntryWithLines persists an entry and all of its lines in a single
	// database transaction; nothing is applied on failure.
	SaveEntryWithLines(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error

	// SoftDeleteEntry marks an owned entry deleted and cascades the soft
	// delete to all of its lines. Returns apperrors.ErrNotFound when the
	// owner has no such entry.
	SoftDeleteEntry(ctx context.Context, entryID string, owner domain.OwnerID, now time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
