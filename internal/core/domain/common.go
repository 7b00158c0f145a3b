package domain

import "time"

// SyncFields holds the replication bookkeeping shared by every synced entity.
// UpdatedAt is the sync watermark; DeletedAt non-nil marks a tombstone.
type SyncFields struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the entity has been soft-deleted.
func (s SyncFields) IsDeleted() bool {
	return s.DeletedAt != nil
}

// Revised returns the entity's watermark timestamp for conflict resolution.
func (s SyncFields) Revised() time.Time {
	return s.UpdatedAt
}
