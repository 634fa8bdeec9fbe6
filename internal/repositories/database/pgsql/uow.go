package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ledgerLockKey identifies the advisory lock guarding the ledger write path.
const ledgerLockKey int64 = 0x4c45444745 // "LEDGE"

type unitOfWork struct {
	BaseRepository
}

func newUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &unitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*unitOfWork)(nil)

// WithinTx runs fn in a READ COMMITTED transaction. Repositories handed to fn share it.
func (u *unitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, r portsrepo.TxRepositories) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if the transaction is committed successfully
	defer u.Rollback(ctx, tx)

	if err := fn(ctx, portsrepo.TxRepositories{
		Applications: &PgxApplicationRepository{db: tx},
		Ledger:       &PgxLedgerRepository{db: tx},
		Transactions: &PgxTransactionRepository{db: tx},
		Payments:     &PgxPaymentRepository{db: tx},
	}); err != nil {
		return err
	}

	return u.Commit(ctx, tx)
}
