package dto

import (
	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementLineResponse is one row of a ledger account statement.
type StatementLineResponse struct {
	EntryID         string             `json:"entryId"`
	Date            string             `json:"date"` // YYYY-MM-DD
	VoucherType     domain.VoucherType `json:"voucherType"`
	Narration       string             `json:"narration,omitempty"`
	OtherLedgerID   string             `json:"otherLedgerId"`
	OtherLedgerName string             `json:"otherLedgerName"`
	Debit           decimal.Decimal    `json:"debit"`
	Credit          decimal.Decimal    `json:"credit"`
	RunningBalance  string             `json:"runningBalance"`
	BalanceSide     domain.BalanceSide `json:"balanceSide"`
}

// ToStatementLineResponses converts statement lines to response DTOs.
func ToStatementLineResponses(lines []domain.StatementLine) []StatementLineResponse {
	res := make([]StatementLineResponse, len(lines))
	for i, l := range lines {
		res[i] = StatementLineResponse{
			EntryID:         l.EntryID,
			Date:            l.Date.Format(DateLayout),
			VoucherType:     l.VoucherType,
			Narration:       l.Narration,
			OtherLedgerID:   l.OtherLedgerID,
			OtherLedgerName: l.OtherLedgerName,
			Debit:           l.Debit,
			Credit:          l.Credit,
			RunningBalance:  l.RunningBalance,
			BalanceSide:     l.BalanceSide,
		}
	}
	return res
}
