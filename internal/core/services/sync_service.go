package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledback/ledback_backend/internal/apperrors"
	"github.com/ledback/ledback_backend/internal/core/domain"
	portsrepo "github.com/ledback/ledback_backend/internal/core/ports/repositories"
	"github.com/ledback/ledback_backend/internal/middleware"
)

// syncTables are the table names accepted in push delete operations.
var syncTables = map[string]bool{
	"ledgers":     true,
	"entries":     true,
	"entry_lines": true,
}

// SyncService implements the pull/push delta protocol on top of the sync
// repository port.
type SyncService struct {
	syncRepo portsrepo.SyncRepository
	resolver domain.ConflictResolver
}

func NewSyncService(repo portsrepo.SyncRepository) *SyncService {
	return &SyncService{syncRepo: repo, resolver: domain.LastWriterWins()}
}

// Pull captures the cursor before querying, so rows written while the pull
// runs are re-sent on the next round instead of being skipped.
func (s *SyncService) Pull(ctx context.Context, owner domain.OwnerID, since time.Time) (*domain.SyncDelta, error) {
	cursor := time.Now().UTC()

	delta, err := s.syncRepo.PullChanges(ctx, owner, since)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Pull failed", slog.String("error", err.Error()))
		return nil, err
	}
	delta.Cursor = cursor

	middleware.GetLoggerFromCtx(ctx).Info("Pull completed",
		slog.Time("since", since),
		slog.Int("ledgers", len(delta.Ledgers)),
		slog.Int("entries", len(delta.Entries)),
		slog.Int("entry_lines", len(delta.EntryLines)),
	)
	return delta, nil
}

// Push validates the batch, forces ownership to the pusher, and applies it in
// one transaction. Upserts missing watermarks get the server time, which also
// becomes the acknowledgement returned to the client.
func (s *SyncService) Push(ctx context.Context, owner domain.OwnerID, batch domain.PushBatch) (time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if batch.IsEmpty() {
		return now, nil
	}

	for i := range batch.Ledgers {
		l := &batch.Ledgers[i]
		if l.LedgerID == "" || l.Name == "" {
			return time.Time{}, fmt.Errorf("%w: ledgersUpsert[%d]: id and name are required", apperrors.ErrValidation, i)
		}
		// Minimal {id, name} upserts get the catch-all classification.
		if l.Nature == "" {
			l.Nature = domain.Asset
		}
		if l.GroupName == "" {
			l.GroupName = "Assets"
		}
		if !l.Nature.IsValid() {
			return time.Time{}, fmt.Errorf("%w: ledgersUpsert[%d]: invalid nature %q", apperrors.ErrValidation, i, l.Nature)
		}
		l.Owner = owner
		defaultWatermarks(&l.SyncFields, now)
	}

	for i := range batch.Entries {
		e := &batch.Entries[i]
		if e.EntryID == "" || e.EntryDate.IsZero() || e.VoucherType == "" {
			return time.Time{}, fmt.Errorf("%w: entriesUpsert[%d]: id, entry_date and voucher_type are required", apperrors.ErrValidation, i)
		}
		if !e.VoucherType.IsValid() {
			return time.Time{}, fmt.Errorf("%w: entriesUpsert[%d]: invalid voucher_type %q", apperrors.ErrValidation, i, e.VoucherType)
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
		e.Owner = owner
		defaultWatermarks(&e.SyncFields, now)
	}

	for i := range batch.EntryLines {
		l := &batch.EntryLines[i]
		if l.LineID == "" || l.EntryID == "" {
			return time.Time{}, fmt.Errorf("%w: entryLinesUpsert[%d]: id and entry_id are required", apperrors.ErrValidation, i)
		}
		if err := l.Validate(); err != nil {
			return time.Time{}, fmt.Errorf("%w: entryLinesUpsert[%d]: %v", apperrors.ErrValidation, i, err)
		}
		defaultWatermarks(&l.SyncFields, now)
	}

	for i, d := range batch.Deletes {
		if !syncTables[d.Table] {
			return time.Time{}, fmt.Errorf("%w: deletes[%d]: unsupported table %q", apperrors.ErrValidation, i, d.Table)
		}
		if d.ID == "" {
			return time.Time{}, fmt.Errorf("%w: deletes[%d]: id is required", apperrors.ErrValidation, i)
		}
	}

	if err := s.syncRepo.ApplyPushBatch(ctx, owner, batch, s.resolver, now); err != nil {
		logger.Error("Push failed", slog.String("error", err.Error()))
		return time.Time{}, err
	}

	logger.Info("Push applied",
		slog.Int("ledgers", len(batch.Ledgers)),
		slog.Int("entries", len(batch.Entries)),
		slog.Int("entry_lines", len(batch.EntryLines)),
		slog.Int("deletes", len(batch.Deletes)),
	)
	return now, nil
}

func defaultWatermarks(sf *domain.SyncFields, now time.Time) {
	if sf.CreatedAt.IsZero() {
		sf.CreatedAt = now
	}
	if sf.UpdatedAt.IsZero() {
		sf.UpdatedAt = now
	}
}
