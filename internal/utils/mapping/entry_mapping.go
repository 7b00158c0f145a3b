package mapping

import (
	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/ledback/ledback_backend/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		ID:          d.EntryID,
		EntryDate:   d.EntryDate,
		VoucherType: string(d.VoucherType),
		Narration:   toNullableString(d.Narration),
		UserEmail:   ToNullableOwner(d.Owner),
		Tags:        d.Tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainEntry converts a model Entry to a domain Entry.
func ToDomainEntry(m models.Entry) domain.Entry {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Entry{
		EntryID:     m.ID,
		EntryDate:   m.EntryDate,
		VoucherType: domain.VoucherType(m.VoucherType),
		Narration:   fromNullableString(m.Narration),
		Tags:        tags,
		Owner:       ToDomainOwner(m.UserEmail),
		SyncFields: domain.SyncFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			DeletedAt: m.DeletedAt,
		},
	}
}

// ToDomainEntrySlice converts a slice of model Entries to domain Entries.
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToModelEntryLine converts a domain EntryLine to a model EntryLine.
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		ID:             d.LineID,
		EntryID:        d.EntryID,
		DebitLedgerID:  d.DebitLedgerID,
		CreditLedgerID: d.CreditLedgerID,
		Amount:         d.Amount,
		Narration:      toNullableString(d.Narration),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		DeletedAt:      d.DeletedAt,
	}
}

// ToDomainEntryLine converts a model EntryLine to a domain EntryLine.
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:         m.ID,
		EntryID:        m.EntryID,
		DebitLedgerID:  m.DebitLedgerID,
		CreditLedgerID: m.CreditLedgerID,
		Amount:         m.Amount,
		Narration:      fromNullableString(m.Narration),
		SyncFields: domain.SyncFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			DeletedAt: m.DeletedAt,
		},
	}
}

// ToDomainEntryLineSlice converts a slice of model EntryLines to domain EntryLines.
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}

func toNullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullableString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
