package dto

import (
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse reports the current ledger balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"asOf"`
}

// CreateLedgerEntryRequest defines a compensating entry.
type CreateLedgerEntryRequest struct {
	Kind          domain.LedgerEntryKind `json:"kind" binding:"required,oneof=deposit_received loan_issued deposit_payment loan_payment"`
	Amount        decimal.Decimal        `json:"amount" binding:"required,dgt0,dmax"`
	TransactionID *string                `json:"transactionID"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string                 `json:"entryID"`
	Kind          domain.LedgerEntryKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	EntryDate     time.Time              `json:"entryDate"`
	TransactionID *string                `json:"transactionID,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		Kind:          e.Kind,
		Amount:        e.Amount,
		EntryDate:     e.EntryDate,
		TransactionID: e.TransactionID,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
