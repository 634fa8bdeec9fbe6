package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LedgerEntryKind is the kind of cash movement; it implies the sign of the amount.
type LedgerEntryKind string

const (
	DepositReceived LedgerEntryKind = "deposit_received"
	LoanIssued      LedgerEntryKind = "loan_issued"
	DepositPayment  LedgerEntryKind = "deposit_payment"
	LoanPayment     LedgerEntryKind = "loan_payment"
)

// IsValid reports whether k is a known entry kind.
func (k LedgerEntryKind) IsValid() bool {
	switch k {
	case DepositReceived, LoanIssued, DepositPayment, LoanPayment:
		return true
	}
	return false
}

// IsInflow reports whether entries of kind k add to the balance.
func (k LedgerEntryKind) IsInflow() bool {
	return k == DepositReceived || k == DepositPayment
}

// IssuanceKind is the entry appended when an application of type t is approved.
func IssuanceKind(t ApplicationType) LedgerEntryKind {
	if t == Deposit {
		return DepositReceived
	}
	return LoanIssued
}

// LedgerEntry is one immutable movement of funds.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	Kind          LedgerEntryKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // Always positive
	EntryDate     time.Time       `json:"entryDate"`
	TransactionID *string         `json:"transactionID"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// NewLedgerEntry validates and builds an entry.
func NewLedgerEntry(id string, kind LedgerEntryKind, amount decimal.Decimal, date time.Time, transactionID *string, now time.Time) (*LedgerEntry, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown ledger entry kind %q", apperrors.ErrValidation, kind)
	}
	amount, err := NormalizeAmount(amount, "ledger entry amount")
	if err != nil {
		return nil, err
	}
	return &LedgerEntry{
		EntryID:       id,
		Kind:          kind,
		Amount:        amount,
		EntryDate:     DateOnly(date),
		TransactionID: transactionID,
		CreatedAt:     now,
	}, nil
}

// SignedAmount returns the entry's contribution to the balance.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Kind.IsInflow() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// BalanceFromTotals computes (deposit_received + deposit_payment) - (loan_issued + loan_payment)
// from per-kind sums. Missing kinds count as zero.
func BalanceFromTotals(totals map[LedgerEntryKind]decimal.Decimal) decimal.Decimal {
	inflow := totals[DepositReceived].Add(totals[DepositPayment])
	outflow := totals[LoanIssued].Add(totals[LoanPayment])
	return inflow.Sub(outflow)
}

// TotalsByKind sums entry amounts per kind.
func TotalsByKind(entries []LedgerEntry) map[LedgerEntryKind]decimal.Decimal {
	totals := make(map[LedgerEntryKind]decimal.Decimal, 4)
	for _, e := range entries {
		totals[e.Kind] = totals[e.Kind].Add(e.Amount)
	}
	return totals
}
