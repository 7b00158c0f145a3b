package domain

import "time"

// Tombstone records that a previously-seen entity was soft-deleted. Only the
// id and the deletion/watermark timestamps are replicated, never the payload.
type Tombstone struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SyncDelta is the result of a pull: everything visible to an owner that
// changed after the client's watermark, plus tombstones for deletions.
type SyncDelta struct {
	// Cursor is the server time captured at the start of the pull. Using the
	// start (not the end) means rows written during the pull are re-sent on
	// the next pull: at-least-once, never at-most-once.
	Cursor     time.Time
	Ledgers    []Ledger
	Entries    []Entry
	EntryLines []EntryLine
	Deleted    TombstoneSet
}

// TombstoneSet groups the per-entity tombstone lists of a pull.
type TombstoneSet struct {
	Ledgers    []Tombstone
	Entries    []Tombstone
	EntryLines []Tombstone
}

// DeleteOp is one generic delete in a push batch, dispatched by table name.
type DeleteOp struct {
	Table     string
	ID        string
	DeletedAt *time.Time // defaults to server "now" when absent
}

// PushBatch is one atomic set of client-submitted upserts and deletes.
// Upserts are keyed by client-supplied ids, which makes retries idempotent.
type PushBatch struct {
	Ledgers    []Ledger
	Entries    []Entry
	EntryLines []EntryLine
	Deletes    []DeleteOp
}

// IsEmpty reports whether the batch contains no operations.
func (b PushBatch) IsEmpty() bool {
	return len(b.Ledgers) == 0 && len(b.Entries) == 0 && len(b.EntryLines) == 0 && len(b.Deletes) == 0
}

// revision is anything carrying a sync watermark.
type revision interface {
	Revised() time.Time
}

// resolveLastWriterWins keeps the revision with the newer watermark. A stale
// incoming write therefore cannot roll back newer server fields, and the
// resolved watermark is the greater of the two in either branch.
func resolveLastWriterWins[T revision](existing, incoming T) T {
	if incoming.Revised().After(existing.Revised()) {
		return incoming
	}
	return existing
}

// ConflictResolver picks the surviving revision when a push upsert collides
// with an existing row. It is a plain set of functions so alternative
// strategies (per-field merge, vector clocks) can be substituted without
// touching the push transaction orchestration.
type ConflictResolver struct {
	Ledger    func(existing, incoming Ledger) Ledger
	Entry     func(existing, incoming Entry) Entry
	EntryLine func(existing, incoming EntryLine) EntryLine
}

// LastWriterWins is the default conflict strategy: the revision with the
// newer updatedAt wins wholesale.
func LastWriterWins() ConflictResolver {
	return ConflictResolver{
		Ledger:    resolveLastWriterWins[Ledger],
		Entry:     resolveLastWriterWins[Entry],
		EntryLine: resolveLastWriterWins[EntryLine],
	}
}
