package repositories

import "context"

// TxRepositories holds the repositories bound to a single unit of work.
// Everything written through them commits or rolls back together.
type TxRepositories struct {
	Applications ApplicationTxRepository
	Ledger       LedgerTxRepository
	Transactions TransactionWriter
	Payments     PaymentWriter
}

// UnitOfWork runs fn inside a storage transaction.
// If fn returns an error nothing it wrote is persisted.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r TxRepositories) error) error
}
