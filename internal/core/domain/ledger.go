package domain

// LedgerNature is the accounting classification of a ledger. It is fixed at
// creation and determines which side of an entry line increases the balance.
type LedgerNature string

const (
	Asset     LedgerNature = "Asset"
	Liability LedgerNature = "Liability"
	Income    LedgerNature = "Income"
	Expense   LedgerNature = "Expense"
)

// IsValid reports whether n is one of the four allowed natures.
func (n LedgerNature) IsValid() bool {
	switch n {
	case Asset, Liability, Income, Expense:
		return true
	}
	return false
}

// IsDebitNature reports whether a debit increases balances of this nature.
func (n LedgerNature) IsDebitNature() bool {
	return n == Asset || n == Expense
}

// BalanceSide labels which side a running balance currently sits on.
type BalanceSide string

const (
	Dr BalanceSide = "Dr"
	Cr BalanceSide = "Cr"
)

// DefaultSide is the side shown for a zero balance of this nature.
func (n LedgerNature) DefaultSide() BalanceSide {
	if n.IsDebitNature() {
		return Dr
	}
	return Cr
}

// Ledger is an account in the chart of accounts.
type Ledger struct {
	LedgerID         string       `json:"id"`
	Name             string       `json:"name"`
	GroupName        string       `json:"groupName"` // free-text classification, not a foreign key
	Nature           LedgerNature `json:"nature"`
	IsParty          bool         `json:"isParty"` // customer/supplier vs internal account
	IsGroup          bool         `json:"isGroup"` // non-postable category header
	CategoryLedgerID *string      `json:"categoryLedgerId,omitempty"`
	Owner            OwnerID      `json:"owner,omitempty"` // GlobalOwner for shared ledgers
	SyncFields
}

// VisibleTo reports whether the ledger can be read by the given owner.
// Global ledgers are visible to everyone; owned ledgers only to their owner.
func (l Ledger) VisibleTo(owner OwnerID) bool {
	return l.Owner.IsGlobal() || l.Owner == owner
}
