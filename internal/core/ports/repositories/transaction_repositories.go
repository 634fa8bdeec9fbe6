package repositories

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	// FindTransactionByApplicationID retrieves the transaction produced by an application.
	FindTransactionByApplicationID(ctx context.Context, applicationID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionMaintainer defines housekeeping on the active flag
type TransactionMaintainer interface {
	// DeactivateSettledTransactions clears the active flag of transactions with no scheduled payment left.
	// It returns the number of transactions changed.
	DeactivateSettledTransactions(ctx context.Context) (int64, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionMaintainer
}
