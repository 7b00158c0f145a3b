package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the persistence shape of a voucher header.
type Entry struct {
	ID          string     `db:"id"`
	EntryDate   time.Time  `db:"entry_date"`
	VoucherType string     `db:"voucher_type"`
	Narration   *string    `db:"narration"`
	UserEmail   *string    `db:"user_email"`
	Tags        []string   `db:"tags"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

// EntryLine is the persistence shape of one debit/credit movement.
type EntryLine struct {
	ID             string          `db:"id"`
	EntryID        string          `db:"entry_id"`
	DebitLedgerID  string          `db:"debit_ledger_id"`
	CreditLedgerID string          `db:"credit_ledger_id"`
	Amount         decimal.Decimal `db:"amount"`
	Narration      *string         `db:"narration"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
	DeletedAt      *time.Time      `db:"deleted_at"`
}
