package dto

import (
	"time"

	"github.com/ledback/ledback_backend/internal/core/domain"
)

// CreateLedgerRequest defines the data needed to create a new ledger.
type CreateLedgerRequest struct {
	Name      string              `json:"name" binding:"required"`
	GroupName string              `json:"groupName" binding:"required"`
	Nature    domain.LedgerNature `json:"nature" binding:"required"`
	IsParty   bool                `json:"isParty"`
	IsGroup   bool                `json:"isGroup"`
	// CategoryLedgerID links the ledger under a parent category; the older
	// clients send the same value as parentLedgerId.
	CategoryLedgerID *string `json:"categoryLedgerId"`
	ParentLedgerID   *string `json:"parentLedgerId"`
}

// Parent normalizes the two accepted parent fields, preferring categoryLedgerId.
func (r CreateLedgerRequest) Parent() *string {
	if r.CategoryLedgerID != nil && *r.CategoryLedgerID != "" {
		return r.CategoryLedgerID
	}
	if r.ParentLedgerID != nil && *r.ParentLedgerID != "" {
		return r.ParentLedgerID
	}
	return nil
}

// LedgerResponse defines the data returned for a ledger.
type LedgerResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	GroupName        string              `json:"groupName"`
	Nature           domain.LedgerNature `json:"nature"`
	IsParty          bool                `json:"isParty"`
	IsGroup          bool                `json:"isGroup"`
	CategoryLedgerID *string             `json:"categoryLedgerId,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// ToLedgerResponse converts a domain.Ledger to a LedgerResponse DTO.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		ID:               l.LedgerID,
		Name:             l.Name,
		GroupName:        l.GroupName,
		Nature:           l.Nature,
		IsParty:          l.IsParty,
		IsGroup:          l.IsGroup,
		CategoryLedgerID: l.CategoryLedgerID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToLedgerResponses converts a slice of domain Ledgers to response DTOs.
func ToLedgerResponses(ledgers []domain.Ledger) []LedgerResponse {
	res := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		res[i] = ToLedgerResponse(&ledgers[i])
	}
	return res
}
