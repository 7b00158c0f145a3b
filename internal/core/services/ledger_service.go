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
	"github.com/ledback/ledback_backend/internal/data"
	"github.com/ledback/ledback_backend/internal/middleware"
	"github.com/ledback/ledback_backend/internal/utils/accounting"
)

// LedgerService implements the ledger use cases on top of the ledger
// repository port.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

func NewLedgerService(repo portsrepo.LedgerRepositoryFacade) *LedgerService {
	return &LedgerService{ledgerRepo: repo}
}

func (s *LedgerService) ListLedgers(ctx context.Context, owner domain.OwnerID) ([]domain.Ledger, error) {
	ledgers, err := s.ledgerRepo.ListLedgers(ctx, owner)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list ledgers", slog.String("error", err.Error()))
		return nil, err
	}
	return ledgers, nil
}

func (s *LedgerService) CreateLedger(ctx context.Context, owner domain.OwnerID, ledger domain.Ledger) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if ledger.Name == "" || ledger.GroupName == "" {
		return nil, fmt.Errorf("%w: name and groupName are required", apperrors.ErrValidation)
	}
	if !ledger.Nature.IsValid() {
		return nil, fmt.Errorf("%w: invalid nature %q", apperrors.ErrValidation, ledger.Nature)
	}
	if ledger.CategoryLedgerID != nil {
		parent, err := s.ledgerRepo.FindLedgerByID(ctx, *ledger.CategoryLedgerID, owner)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: categoryLedgerId %s does not exist", apperrors.ErrValidation, *ledger.CategoryLedgerID)
			}
			return nil, err
		}
		if parent.LedgerID == ledger.LedgerID {
			return nil, fmt.Errorf("%w: ledger cannot be its own category", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	ledger.LedgerID = uuid.NewString()
	ledger.Owner = owner
	ledger.CreatedAt = now
	ledger.UpdatedAt = now
	ledger.DeletedAt = nil

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledger.LedgerID))
		}
		return nil, err
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("name", ledger.Name))
	return &ledger, nil
}

func (s *LedgerService) DeleteLedger(ctx context.Context, owner domain.OwnerID, ledgerID string, hard bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID, owner)
	if err != nil {
		return err
	}
	// Global catalog rows cannot be removed through the owner API.
	if ledger.Owner != owner {
		return fmt.Errorf("%w: ledger %s is not owned by caller", apperrors.ErrForbidden, ledgerID)
	}

	if hard {
		refs, err := s.ledgerRepo.CountLinesReferencingLedger(ctx, ledgerID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: ledger %s is referenced by %d entry lines", apperrors.ErrValidation, ledgerID, refs)
		}
		if err := s.ledgerRepo.HardDeleteLedger(ctx, ledgerID, owner); err != nil {
			return err
		}
		logger.Info("Ledger hard-deleted", slog.String("ledger_id", ledgerID))
		return nil
	}

	if err := s.ledgerRepo.SoftDeleteLedger(ctx, ledgerID, owner, time.Now()); err != nil {
		return err
	}
	logger.Info("Ledger soft-deleted", slog.String("ledger_id", ledgerID))
	return nil
}

// GetLedgerStatement builds the running-balance statement of a ledger. An
// unknown or invisible ledger yields an empty statement rather than an error,
// so clients can render a blank account without special-casing 404s.
func (s *LedgerService) GetLedgerStatement(ctx context.Context, owner domain.OwnerID, ledgerID string, from, to *time.Time) ([]domain.StatementLine, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID, owner)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.StatementLine{}, nil
		}
		return nil, err
	}

	movements, err := s.ledgerRepo.FindMovementsByLedger(ctx, ledgerID, owner, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch ledger movements", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, err
	}

	return accounting.BuildStatement(ledger.Nature, movements), nil
}

// EnsureDefaultLedgers inserts missing rows of the built-in global catalog.
// Existing names (case-insensitive) are left untouched, so repeated startups
// are no-ops.
func (s *LedgerService) EnsureDefaultLedgers(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	seeded := 0
	for _, seed := range data.DefaultLedgers {
		_, err := s.ledgerRepo.FindGlobalLedgerByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		now := time.Now()
		ledger := domain.Ledger{
			LedgerID:  uuid.NewString(),
			Name:      seed.Name,
			GroupName: seed.GroupName,
			Nature:    seed.Nature,
			IsParty:   seed.IsParty,
			Owner:     domain.GlobalOwner,
			SyncFields: domain.SyncFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
			// Concurrent seeders can race past the existence check.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return err
		}
		seeded++
	}

	if seeded > 0 {
		logger.Info("Default ledgers seeded", slog.Int("count", seeded))
	}
	return nil
}
