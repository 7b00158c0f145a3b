package dto

import (
	"fmt"
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// The sync wire format uses snake_case keys and ISO timestamps, matching the
// mobile client's local database column names.

// LedgerUpsert is one ledger row pushed by a client.
type LedgerUpsert struct {
	ID               string     `json:"id" binding:"required"`
	Name             string     `json:"name"`
	GroupName        string     `json:"group_name"`
	Nature           string     `json:"nature"`
	IsParty          bool       `json:"is_party"`
	IsGroup          bool       `json:"is_group"`
	CategoryLedgerID *string    `json:"category_ledger_id"`
	CreatedAt        *time.Time `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

// EntryUpsert is one entry header pushed by a client.
type EntryUpsert struct {
	ID          string     `json:"id" binding:"required"`
	EntryDate   string     `json:"entry_date"`
	VoucherType string     `json:"voucher_type"`
	Narration   string     `json:"narration"`
	Tags        []string   `json:"tags"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// EntryLineUpsert is one entry line pushed by a client.
type EntryLineUpsert struct {
	ID             string          `json:"id" binding:"required"`
	EntryID        string          `json:"entry_id"`
	DebitLedgerID  string          `json:"debit_ledger_id"`
	CreditLedgerID string          `json:"credit_ledger_id"`
	Amount         decimal.Decimal `json:"amount"`
	Narration      string          `json:"narration"`
	CreatedAt      *time.Time      `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at"`
}

// DeleteOpRequest is one client-side deletion to replay on the server.
type DeleteOpRequest struct {
	Table     string     `json:"table" binding:"required"`
	ID        string     `json:"id" binding:"required"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// PushRequest is the batch a client uploads in one sync round.
type PushRequest struct {
	LedgersUpsert    []LedgerUpsert    `json:"ledgersUpsert"`
	EntriesUpsert    []EntryUpsert     `json:"entriesUpsert"`
	EntryLinesUpsert []EntryLineUpsert `json:"entryLinesUpsert"`
	Deletes          []DeleteOpRequest `json:"deletes"`
}

// PushResponse acknowledges an applied batch.
type PushResponse struct {
	OK         bool      `json:"ok"`
	ServerTime time.Time `json:"serverTime"`
}

// LedgerRow is a ledger in a pull delta.
type LedgerRow struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	GroupName        string    `json:"group_name"`
	Nature           string    `json:"nature"`
	IsParty          bool      `json:"is_party"`
	IsGroup          bool      `json:"is_group"`
	CategoryLedgerID *string   `json:"category_ledger_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EntryRow is an entry header in a pull delta.
type EntryRow struct {
	ID          string    `json:"id"`
	EntryDate   string    `json:"entry_date"`
	VoucherType string    `json:"voucher_type"`
	Narration   string    `json:"narration"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryLineRow is an entry line in a pull delta.
type EntryLineRow struct {
	ID             string          `json:"id"`
	EntryID        string          `json:"entry_id"`
	DebitLedgerID  string          `json:"debit_ledger_id"`
	CreditLedgerID string          `json:"credit_ledger_id"`
	Amount         decimal.Decimal `json:"amount"`
	Narration      string          `json:"narration"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TombstoneRow is one soft-deleted row in a pull delta.
type TombstoneRow struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeletedSet groups tombstones by table.
type DeletedSet struct {
	Ledgers    []TombstoneRow `json:"ledgers"`
	Entries    []TombstoneRow `json:"entries"`
	EntryLines []TombstoneRow `json:"entry_lines"`
}

// PullResponse is the delta a client downloads in one sync round.
type PullResponse struct {
	Cursor     time.Time      `json:"cursor"`
	Ledgers    []LedgerRow    `json:"ledgers"`
	Entries    []EntryRow     `json:"entries"`
	EntryLines []EntryLineRow `json:"entry_lines"`
	Deleted    DeletedSet     `json:"deleted"`
}

// ToPullResponse converts a domain delta to the sync wire shape.
func ToPullResponse(d *domain.SyncDelta) PullResponse {
	res := PullResponse{
		Cursor:     d.Cursor,
		Ledgers:    make([]LedgerRow, len(d.Ledgers)),
		Entries:    make([]EntryRow, len(d.Entries)),
		EntryLines: make([]EntryLineRow, len(d.EntryLines)),
		Deleted: DeletedSet{
			Ledgers:    toTombstoneRows(d.Deleted.Ledgers),
			Entries:    toTombstoneRows(d.Deleted.Entries),
			EntryLines: toTombstoneRows(d.Deleted.EntryLines),
		},
	}
	for i, l := range d.Ledgers {
		res.Ledgers[i] = LedgerRow{
			ID:               l.LedgerID,
			Name:             l.Name,
			GroupName:        l.GroupName,
			Nature:           string(l.Nature),
			IsParty:          l.IsParty,
			IsGroup:          l.IsGroup,
			CategoryLedgerID: l.CategoryLedgerID,
			CreatedAt:        l.CreatedAt,
			UpdatedAt:        l.UpdatedAt,
		}
	}
	for i, e := range d.Entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		res.Entries[i] = EntryRow{
			ID:          e.EntryID,
			EntryDate:   e.EntryDate.Format(DateLayout),
			VoucherType: string(e.VoucherType),
			Narration:   e.Narration,
			Tags:        tags,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		}
	}
	for i, l := range d.EntryLines {
		res.EntryLines[i] = EntryLineRow{
			ID:             l.LineID,
			EntryID:        l.EntryID,
			DebitLedgerID:  l.DebitLedgerID,
			CreditLedgerID: l.CreditLedgerID,
			Amount:         l.Amount,
			Narration:      l.Narration,
			CreatedAt:      l.CreatedAt,
			UpdatedAt:      l.UpdatedAt,
		}
	}
	return res
}

// ToPushBatch converts the wire batch into domain form. Field-level rules
// (required ids, valid natures and voucher types) are checked by the service;
// only shape problems such as unparseable dates fail here.
func (r PushRequest) ToPushBatch() (domain.PushBatch, error) {
	batch := domain.PushBatch{
		Ledgers:    make([]domain.Ledger, len(r.LedgersUpsert)),
		Entries:    make([]domain.Entry, len(r.EntriesUpsert)),
		EntryLines: make([]domain.EntryLine, len(r.EntryLinesUpsert)),
		Deletes:    make([]domain.DeleteOp, len(r.Deletes)),
	}
	for i, l := range r.LedgersUpsert {
		batch.Ledgers[i] = domain.Ledger{
			LedgerID:         l.ID,
			Name:             l.Name,
			GroupName:        l.GroupName,
			Nature:           domain.LedgerNature(l.Nature),
			IsParty:          l.IsParty,
			IsGroup:          l.IsGroup,
			CategoryLedgerID: l.CategoryLedgerID,
			SyncFields:       toSyncFields(l.CreatedAt, l.UpdatedAt),
		}
	}
	for i, e := range r.EntriesUpsert {
		var entryDate time.Time
		if e.EntryDate != "" {
			parsed, err := ParseDate(e.EntryDate)
			if err != nil {
				return domain.PushBatch{}, fmt.Errorf("entriesUpsert[%d]: %w", i, err)
			}
			entryDate = parsed
		}
		batch.Entries[i] = domain.Entry{
			EntryID:     e.ID,
			EntryDate:   entryDate,
			VoucherType: domain.VoucherType(e.VoucherType),
			Narration:   e.Narration,
			Tags:        e.Tags,
			SyncFields:  toSyncFields(e.CreatedAt, e.UpdatedAt),
		}
	}
	for i, l := range r.EntryLinesUpsert {
		batch.EntryLines[i] = domain.EntryLine{
			LineID:         l.ID,
			EntryID:        l.EntryID,
			DebitLedgerID:  l.DebitLedgerID,
			CreditLedgerID: l.CreditLedgerID,
			Amount:         l.Amount,
			Narration:      l.Narration,
			SyncFields:     toSyncFields(l.CreatedAt, l.UpdatedAt),
		}
	}
	for i, d := range r.Deletes {
		batch.Deletes[i] = domain.DeleteOp{Table: d.Table, ID: d.ID, DeletedAt: d.DeletedAt}
	}
	return batch, nil
}

func toSyncFields(createdAt, updatedAt *time.Time) domain.SyncFields {
	var sf domain.SyncFields
	if createdAt != nil {
		sf.CreatedAt = *createdAt
	}
	if updatedAt != nil {
		sf.UpdatedAt = *updatedAt
	}
	return sf
}

func toTombstoneRows(ts []domain.Tombstone) []TombstoneRow {
	rows := make([]TombstoneRow, len(ts))
	for i, t := range ts {
		rows[i] = TombstoneRow{ID: t.ID, DeletedAt: t.DeletedAt, UpdatedAt: t.UpdatedAt}
	}
	return rows
}
