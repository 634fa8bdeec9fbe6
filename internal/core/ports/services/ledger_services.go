package services

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations on the cash ledger
type LedgerReaderSvc interface {
	// GetBalance re-aggregates the ledger on every call.
	GetBalance(ctx context.Context) (decimal.Decimal, error)

	// ListEntries returns the full ledger to admins.
	ListEntries(ctx context.Context, caller domain.Principal) ([]domain.LedgerEntry, error)
}

// LedgerWriterSvc defines write operations on the cash ledger
type LedgerWriterSvc interface {
	// AppendCompensatingEntry records an admin correction as a new entry.
	AppendCompensatingEntry(ctx context.Context, caller domain.Principal, kind domain.LedgerEntryKind, amount decimal.Decimal, transactionID *string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
