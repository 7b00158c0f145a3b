package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies an entry.
type VoucherType string

const (
	Journal  VoucherType = "Journal"
	Payment  VoucherType = "Payment"
	Receipt  VoucherType = "Receipt"
	Contra   VoucherType = "Contra"
	Transfer VoucherType = "Transfer"
)

// IsValid reports whether v is one of the allowed voucher types.
func (v VoucherType) IsValid() bool {
	switch v {
	case Journal, Payment, Receipt, Contra, Transfer:
		return true
	}
	return false
}

// Entry is a dated voucher grouping one or more movements. An entry always
// owns at least one line after creation.
type Entry struct {
	EntryID     string      `json:"id"`
	EntryDate   time.Time   `json:"entryDate"` // calendar date, no time component
	VoucherType VoucherType `json:"voucherType"`
	Narration   string      `json:"narration,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Owner       OwnerID     `json:"owner,omitempty"` // never global; entries are private
	SyncFields
}

// EntryLine is one debit/credit movement pair belonging to exactly one entry.
type EntryLine struct {
	LineID         string          `json:"id"`
	EntryID        string          `json:"entryId"`
	DebitLedgerID  string          `json:"debitLedgerId"`
	CreditLedgerID string          `json:"creditLedgerId"`
	Amount         decimal.Decimal `json:"amount"` // strictly positive
	Narration      string          `json:"narration,omitempty"`
	SyncFields
}

// Validate checks the line invariants: both ledger references present and
// distinct, and a strictly positive amount.
func (l EntryLine) Validate() error {
	if l.DebitLedgerID == "" || l.CreditLedgerID == "" {
		return fmt.Errorf("line must have debitLedgerId and creditLedgerId")
	}
	if l.DebitLedgerID == l.CreditLedgerID {
		return fmt.Errorf("line debit and credit ledgers must differ")
	}
	if l.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("line amount must be > 0")
	}
	return nil
}
