package pgsql

import (
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository to the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:      newUnitOfWork(dbPool),
		ApplicationRepo: newPgxApplicationRepository(dbPool),
		LedgerRepo:      newPgxLedgerRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		PaymentRepo:     newPgxPaymentRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
