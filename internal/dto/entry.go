package dto

import (
	"fmt"
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date wire format used for entry dates and
// statement bounds.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date, also accepting a full RFC 3339 timestamp
// (older clients send one) whose time component is discarded.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
}

// EntryLineInput is one movement of a create-entry request.
type EntryLineInput struct {
	DebitLedgerID  string          `json:"debitLedgerId" binding:"required"`
	CreditLedgerID string          `json:"creditLedgerId" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Narration      string          `json:"narration"`
}

// CreateEntryRequest defines the data needed to create an entry with lines.
type CreateEntryRequest struct {
	Date        string             `json:"date" binding:"required"` // YYYY-MM-DD
	VoucherType domain.VoucherType `json:"voucherType" binding:"required"`
	Narration   string             `json:"narration"`
	Tags        []string           `json:"tags"`
	Lines       []EntryLineInput   `json:"lines" binding:"required"`
}

// EntryResponse defines the data returned for an entry header.
type EntryResponse struct {
	ID          string             `json:"id"`
	EntryDate   string             `json:"entryDate"` // YYYY-MM-DD
	VoucherType domain.VoucherType `json:"voucherType"`
	Narration   string             `json:"narration,omitempty"`
	Tags        []string           `json:"tags"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// EntryLineResponse defines the data returned for one line.
type EntryLineResponse struct {
	ID             string          `json:"id"`
	EntryID        string          `json:"entryId"`
	DebitLedgerID  string          `json:"debitLedgerId"`
	CreditLedgerID string          `json:"creditLedgerId"`
	Amount         decimal.Decimal `json:"amount"`
	Narration      string          `json:"narration,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// EntryWithLinesResponse pairs an entry header with its lines.
type EntryWithLinesResponse struct {
	Entry EntryResponse       `json:"entry"`
	Lines []EntryLineResponse `json:"lines"`
}

// TransactionResponse is one row of the flattened movement listing.
type TransactionResponse struct {
	ID             string             `json:"id"`
	EntryID        string             `json:"entryId"`
	Date           string             `json:"date"` // YYYY-MM-DD
	VoucherType    domain.VoucherType `json:"voucherType"`
	DebitLedgerID  string             `json:"debitLedgerId"`
	CreditLedgerID string             `json:"creditLedgerId"`
	Amount         decimal.Decimal    `json:"amount"`
	Narration      string             `json:"narration,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ToEntryResponse converts a domain.Entry to an EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResponse{
		ID:          e.EntryID,
		EntryDate:   e.EntryDate.Format(DateLayout),
		VoucherType: e.VoucherType,
		Narration:   e.Narration,
		Tags:        tags,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain Entries to response DTOs.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// ToEntryLineResponse converts a domain.EntryLine to a response DTO.
func ToEntryLineResponse(l *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		ID:             l.LineID,
		EntryID:        l.EntryID,
		DebitLedgerID:  l.DebitLedgerID,
		CreditLedgerID: l.CreditLedgerID,
		Amount:         l.Amount,
		Narration:      l.Narration,
		CreatedAt:      l.CreatedAt,
	}
}

// ToEntryWithLinesResponse converts an entry and its lines to a response DTO.
func ToEntryWithLinesResponse(e *domain.Entry, lines []domain.EntryLine) EntryWithLinesResponse {
	lineRes := make([]EntryLineResponse, len(lines))
	for i := range lines {
		lineRes[i] = ToEntryLineResponse(&lines[i])
	}
	return EntryWithLinesResponse{Entry: ToEntryResponse(e), Lines: lineRes}
}

// ToTransactionResponses converts flattened movements to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = TransactionResponse{
			ID:             t.LineID,
			EntryID:        t.EntryID,
			Date:           t.Date.Format(DateLayout),
			VoucherType:    t.VoucherType,
			DebitLedgerID:  t.DebitLedgerID,
			CreditLedgerID: t.CreditLedgerID,
			Amount:         t.Amount,
			Narration:      t.Narration,
			CreatedAt:      t.CreatedAt,
		}
	}
	return res
}
