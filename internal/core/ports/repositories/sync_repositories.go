package repositories

import (
	"context"
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
)

// SyncRepository defines the persistence operations of the sync protocol.
type SyncRepository interface {
	// PullChanges collects everything visible to the owner that changed
	// strictly after the watermark: non-deleted rows ordered by updated_at,
	// and tombstones ordered by deleted_at. The delta's Cursor is left for
	// the caller to set.
	PullChanges(ctx context.Context, owner domain.OwnerID, since time.Time) (*domain.SyncDelta, error)

	// ApplyPushBatch applies a validated batch inside one database
	// transaction: any failure rolls the whole batch back. Ownership of
	// every upsert is forced to the pushing owner; conflicts with existing
	// rows are settled by the resolver; entry-line upserts and deletes are
	// rejected with apperrors.ErrForbidden when the parent entry is not the
	// owner's. Deletes without a timestamp use now.
	ApplyPushBatch(ctx context.Context, owner domain.OwnerID, batch domain.PushBatch, resolve domain.ConflictResolver, now time.Time) error
}
