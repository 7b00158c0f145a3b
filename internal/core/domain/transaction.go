package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the flattened movement view used by listing endpoints: an
// entry line joined to its parent entry header, with the line narration
// falling back to the entry's.
type Transaction struct {
	LineID         string          `json:"id"`
	EntryID        string          `json:"entryId"`
	Date           time.Time       `json:"date"`
	VoucherType    VoucherType     `json:"voucherType"`
	DebitLedgerID  string          `json:"debitLedgerId"`
	CreditLedgerID string          `json:"creditLedgerId"`
	Amount         decimal.Decimal `json:"amount"`
	Narration      string          `json:"narration,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}
