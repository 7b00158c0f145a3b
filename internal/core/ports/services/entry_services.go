package services

import (
	"context"

	"github.com/ledback/ledback_backend/internal/core/domain"
)

// EntrySvcFacade defines the entry use cases exposed to the handlers.
type EntrySvcFacade interface {
	// CreateEntry validates and persists an entry with its lines atomically.
	// Every line must reference visible, non-deleted ledgers.
	CreateEntry(ctx context.Context, owner domain.OwnerID, entry domain.Entry, lines []domain.EntryLine) (*domain.Entry, []domain.EntryLine, error)

	// ListEntries returns the owner's non-deleted entries, newest first.
	ListEntries(ctx context.Context, owner domain.OwnerID) ([]domain.Entry, error)

	// GetEntryWithLines returns one owned entry and its lines.
	GetEntryWithLines(ctx context.Context, owner domain.OwnerID, entryID string) (*domain.Entry, []domain.EntryLine, error)

	// DeleteEntry soft-deletes an owned entry together with its lines.
	DeleteEntry(ctx context.Context, owner domain.OwnerID, entryID string) error

	// ListTransactions returns the owner's movements flattened across entries,
	// newest first.
	ListTransactions(ctx context.Context, owner domain.OwnerID) ([]domain.Transaction, error)
}
