package repositories

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// SumByKind aggregates entry amounts per kind over the whole ledger in one consistent read.
	SumByKind(ctx context.Context) (map[domain.LedgerEntryKind]decimal.Decimal, error)

	// ListEntries returns all entries ordered by creation time.
	ListEntries(ctx context.Context) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines the only write operation the ledger supports
type LedgerWriter interface {
	// AppendEntry adds an immutable entry.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// LedgerLocker serializes writers of the ledger
type LedgerLocker interface {
	// LockLedger takes exclusive access to the ledger write path until the unit of work ends.
	LockLedger(ctx context.Context) error
}

// LedgerRepositoryFacade combines the ledger interfaces used outside a unit of work
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerTxRepository is the ledger repository bound to a unit of work
type LedgerTxRepository interface {
	LedgerReader
	LedgerWriter
	LedgerLocker
}
