package accounting

import (
	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildStatement annotates an ordered movement sequence with running balances
// for a ledger of the given nature. It is a pure left-fold over the input:
// the signed accumulator starts at zero and each row adds its net effect,
// with polarity determined by the ledger's nature (debit increases
// Asset/Expense balances, credit increases Liability/Income balances).
//
// The displayed balance is the absolute value of the accumulator plus a side
// label derived from its current sign; a zero balance defaults to the
// nature's own side. Callers must supply movements already ordered by
// (entry date, entry creation, line creation).
func BuildStatement(nature domain.LedgerNature, movements []domain.Movement) []domain.StatementLine {
	lines := make([]domain.StatementLine, len(movements))
	isDebitNature := nature.IsDebitNature()

	running := decimal.Zero
	for i, m := range movements {
		if isDebitNature {
			running = running.Add(m.Debit.Sub(m.Credit))
		} else {
			running = running.Add(m.Credit.Sub(m.Debit))
		}

		side := nature.DefaultSide()
		if running.IsNegative() {
			side = oppositeSide(side)
		}

		lines[i] = domain.StatementLine{
			Movement:       m,
			RunningBalance: running.Abs().StringFixed(2),
			BalanceSide:    side,
		}
	}

	return lines
}

func oppositeSide(s domain.BalanceSide) domain.BalanceSide {
	if s == domain.Dr {
		return domain.Cr
	}
	return domain.Dr
}
