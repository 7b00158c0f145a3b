package mapping

import (
	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/ledback/ledback_backend/internal/models"
)

// ToModelLedger converts a domain Ledger to a model Ledger.
func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		ID:               d.LedgerID,
		Name:             d.Name,
		GroupName:        d.GroupName,
		Nature:           string(d.Nature),
		IsParty:          d.IsParty,
		IsGroup:          d.IsGroup,
		CategoryLedgerID: d.CategoryLedgerID,
		UserEmail:        ToNullableOwner(d.Owner),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		DeletedAt:        d.DeletedAt,
	}
}

// ToDomainLedger converts a model Ledger to a domain Ledger.
func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:         m.ID,
		Name:             m.Name,
		GroupName:        m.GroupName,
		Nature:           domain.LedgerNature(m.Nature),
		IsParty:          m.IsParty,
		IsGroup:          m.IsGroup,
		CategoryLedgerID: m.CategoryLedgerID,
		Owner:            ToDomainOwner(m.UserEmail),
		SyncFields: domain.SyncFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			DeletedAt: m.DeletedAt,
		},
	}
}

// ToDomainLedgerSlice converts a slice of model Ledgers to domain Ledgers.
func ToDomainLedgerSlice(ms []models.Ledger) []domain.Ledger {
	ds := make([]domain.Ledger, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedger(m)
	}
	return ds
}

// ToNullableOwner maps the global owner sentinel to a NULL user_email.
func ToNullableOwner(o domain.OwnerID) *string {
	if o.IsGlobal() {
		return nil
	}
	s := o.String()
	return &s
}

// ToDomainOwner maps a nullable user_email column to an OwnerID.
func ToDomainOwner(email *string) domain.OwnerID {
	if email == nil {
		return domain.GlobalOwner
	}
	return domain.OwnerID(*email)
}
