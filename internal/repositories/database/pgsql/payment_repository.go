package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_ledger_app/internal/models"
	"github.com/SscSPs/loan_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `p.payment_id, p.transaction_id, p.payment_type, p.amount, p.due_date,
	p.status, p.paid_date, p.created_at`

// PgxPaymentRepository stores payment schedules in PostgreSQL.
type PgxPaymentRepository struct {
	db dbtx
}

func newPgxPaymentRepository(db dbtx) *PgxPaymentRepository {
	return &PgxPaymentRepository{db: db}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPaymentInto(m *models.Payment, extra ...any) []any {
	return append([]any{
		&m.PaymentID,
		&m.TransactionID,
		&m.PaymentType,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.PaidDate,
		&m.CreatedAt,
	}, extra...)
}

// SavePayments inserts the whole schedule in one batch.
func (r *PgxPaymentRepository) SavePayments(ctx context.Context, payments []domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	query := `
		INSERT INTO payments (payment_id, transaction_id, payment_type, amount, due_date, status, paid_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, p := range payments {
		m := mapping.ToModelPayment(p)
		batch.Queue(query, m.PaymentID, m.TransactionID, m.PaymentType, m.Amount, m.DueDate, m.Status, m.PaidDate, m.CreatedAt)
	}

	// Close reports the first failing statement of the batch
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment already exists", apperrors.ErrDuplicate)
		}
		return writeFailed(err, "failed to insert payment schedule")
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentWithOwner(ctx context.Context, paymentID string) (*domain.PaymentWithOwner, error) {
	query := `
		SELECT ` + paymentColumns + `, t.user_id
		FROM payments p
		JOIN transactions t ON t.transaction_id = p.transaction_id
		WHERE p.payment_id = $1;
	`
	var m models.Payment
	var ownerID string
	if err := r.db.QueryRow(ctx, query, paymentID).Scan(scanPaymentInto(&m, &ownerID)...); err != nil {
		return nil, notFoundOr(err, "payment "+paymentID)
	}
	return &domain.PaymentWithOwner{Payment: mapping.ToDomainPayment(m), OwnerID: ownerID}, nil
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, ownerID *string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		JOIN transactions t ON t.transaction_id = p.transaction_id
		WHERE ($1::uuid IS NULL OR t.user_id = $1::uuid)
		ORDER BY p.due_date, p.payment_id;
	`
	return r.queryPayments(ctx, query, ownerID)
}

func (r *PgxPaymentRepository) ListPaymentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		WHERE p.transaction_id = $1
		ORDER BY p.due_date, p.payment_id;
	`
	return r.queryPayments(ctx, query, transactionID)
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(scanPaymentInto(&m)...); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payments", err)
	}
	return payments, nil
}

// CompareAndSetPaymentStatus is a single conditional UPDATE, so updates to different rows never block each other.
func (r *PgxPaymentRepository) CompareAndSetPaymentStatus(ctx context.Context, p domain.Payment, from domain.PaymentStatus) error {
	m := mapping.ToModelPayment(p)
	query := `
		UPDATE payments
		SET status = $2, paid_date = $3
		WHERE payment_id = $1 AND status = $4;
	`
	tag, err := r.db.Exec(ctx, query, m.PaymentID, m.Status, m.PaidDate, string(from))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment "+p.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s is no longer %s", apperrors.ErrAlreadyResolved, p.PaymentID, from)
	}
	return nil
}
