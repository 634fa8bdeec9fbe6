package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_ledger_app/internal/models"
	"github.com/SscSPs/loan_ledger_app/internal/utils/mapping"
)

// PgxTransactionRepository stores transactions in PostgreSQL.
type PgxTransactionRepository struct {
	db dbtx
}

func newPgxTransactionRepository(db dbtx) *PgxTransactionRepository {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			transaction_id, user_id, application_id, start_date, end_date,
			monthly_payment, total_amount, is_active, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.ApplicationID,
		m.StartDate,
		m.EndDate,
		m.MonthlyPayment,
		m.TotalAmount,
		m.IsActive,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: application %s already has a transaction", apperrors.ErrDuplicate, txn.ApplicationID)
		}
		return writeFailed(err, "failed to insert transaction "+txn.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByApplicationID(ctx context.Context, applicationID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, user_id, application_id, start_date, end_date,
			monthly_payment, total_amount, is_active, created_at
		FROM transactions
		WHERE application_id = $1;
	`
	var m models.Transaction
	err := r.db.QueryRow(ctx, query, applicationID).Scan(
		&m.TransactionID,
		&m.UserID,
		&m.ApplicationID,
		&m.StartDate,
		&m.EndDate,
		&m.MonthlyPayment,
		&m.TotalAmount,
		&m.IsActive,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "transaction for application "+applicationID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) DeactivateSettledTransactions(ctx context.Context) (int64, error) {
	query := `
		UPDATE transactions t
		SET is_active = FALSE
		WHERE t.is_active
		  AND NOT EXISTS (
			SELECT 1 FROM payments p
			WHERE p.transaction_id = t.transaction_id AND p.status = 'scheduled'
		  );
	`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to deactivate transactions", err)
	}
	return tag.RowsAffected(), nil
}
