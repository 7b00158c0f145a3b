package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledback/ledback_backend/internal/apperrors"
	"github.com/ledback/ledback_backend/internal/core/domain"
	portsrepo "github.com/ledback/ledback_backend/internal/core/ports/repositories"
	"github.com/ledback/ledback_backend/internal/middleware"
)

// EntryService implements the entry use cases on top of the entry and ledger
// repository ports.
type EntryService struct {
	entryRepo  portsrepo.EntryRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) *EntryService {
	return &EntryService{entryRepo: entryRepo, ledgerRepo: ledgerRepo}
}

func (s *EntryService) CreateEntry(ctx context.Context, owner domain.OwnerID, entry domain.Entry, lines []domain.EntryLine) (*domain.Entry, []domain.EntryLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if entry.EntryDate.IsZero() {
		return nil, nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if !entry.VoucherType.IsValid() {
		return nil, nil, fmt.Errorf("%w: invalid voucherType %q", apperrors.ErrValidation, entry.VoucherType)
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: entry must have at least one line", apperrors.ErrValidation)
	}

	for i := range lines {
		if err := lines[i].Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: lines[%d]: %v", apperrors.ErrValidation, i, err)
		}
		for _, ledgerID := range []string{lines[i].DebitLedgerID, lines[i].CreditLedgerID} {
			if _, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID, owner); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, nil, fmt.Errorf("%w: lines[%d]: ledger %s does not exist", apperrors.ErrValidation, i, ledgerID)
				}
				return nil, nil, err
			}
		}
	}

	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	now := time.Now()
	entry.EntryID = uuid.NewString()
	entry.Owner = owner
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.DeletedAt = nil
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entry.EntryID
		lines[i].CreatedAt = now
		lines[i].UpdatedAt = now
		lines[i].DeletedAt = nil
	}

	if err := s.entryRepo.SaveEntryWithLines(ctx, entry, lines); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, nil, err
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.Int("lines", len(lines)))
	return &entry, lines, nil
}

func (s *EntryService) ListEntries(ctx context.Context, owner domain.OwnerID) ([]domain.Entry, error) {
	entries, err := s.entryRepo.ListEntries(ctx, owner)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, err
	}
	return entries, nil
}

func (s *EntryService) GetEntryWithLines(ctx context.Context, owner domain.OwnerID, entryID string) (*domain.Entry, []domain.EntryLine, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID, owner)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, owner domain.OwnerID, entryID string) error {
	if err := s.entryRepo.SoftDeleteEntry(ctx, entryID, owner, time.Now()); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Entry soft-deleted", slog.String("entry_id", entryID))
	return nil
}

func (s *EntryService) ListTransactions(ctx context.Context, owner domain.OwnerID) ([]domain.Transaction, error) {
	txns, err := s.entryRepo.ListTransactions(ctx, owner)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, err
	}
	return txns, nil
}
