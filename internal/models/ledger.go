package models

import "time"

// Ledger is the persistence shape of a chart-of-accounts row.
// UserEmail is NULL for global (shared) ledgers.
type Ledger struct {
	ID               string     `db:"id"`
	Name             string     `db:"name"`
	GroupName        string     `db:"group_name"`
	Nature           string     `db:"nature"`
	IsParty          bool       `db:"is_party"`
	IsGroup          bool       `db:"is_group"`
	CategoryLedgerID *string    `db:"category_ledger_id"` // nullable self-reference
	UserEmail        *string    `db:"user_email"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}
