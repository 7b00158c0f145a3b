package services

import (
	"context"
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
)

// SyncSvcFacade defines the delta-sync use cases exposed to the handlers.
type SyncSvcFacade interface {
	// Pull returns everything visible to the owner that changed after since,
	// with a cursor the client stores as its next watermark.
	Pull(ctx context.Context, owner domain.OwnerID, since time.Time) (*domain.SyncDelta, error)

	// Push applies a client batch atomically and returns the server time the
	// client should record for its acknowledgement.
	Push(ctx context.Context, owner domain.OwnerID, batch domain.PushBatch) (time.Time, error)
}
