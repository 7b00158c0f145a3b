package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is one raw statement row for a ledger: an entry line viewed from
// that ledger's perspective, joined to its parent entry and to the other-side
// ledger. Exactly one of Debit/Credit is non-zero since the two ledgers of a
// line always differ.
type Movement struct {
	EntryID         string
	Date            time.Time
	VoucherType     VoucherType
	Narration       string // line narration, falling back to the entry's
	OtherLedgerID   string
	OtherLedgerName string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
}

// StatementLine is a movement annotated with the cumulative running balance
// up to and including it, displayed as an absolute value plus a side label.
type StatementLine struct {
	Movement
	RunningBalance string
	BalanceSide    BalanceSide
}
