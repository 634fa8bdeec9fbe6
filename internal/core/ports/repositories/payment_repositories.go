package repositories

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

// PaymentReader defines read operations for payments
type PaymentReader interface {
	// FindPaymentWithOwner retrieves a payment together with the owner of its parent transaction.
	FindPaymentWithOwner(ctx context.Context, paymentID string) (*domain.PaymentWithOwner, error)

	// ListPayments retrieves payments ordered by due date, restricted to transactions owned by ownerID when non-nil.
	ListPayments(ctx context.Context, ownerID *string) ([]domain.Payment, error)

	// ListPaymentsByTransactionID retrieves the schedule of one transaction ordered by due date.
	ListPaymentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payments
type PaymentWriter interface {
	// SavePayments persists a whole schedule.
	SavePayments(ctx context.Context, payments []domain.Payment) error
}

// PaymentStatusUpdater defines the single-row status change
type PaymentStatusUpdater interface {
	// CompareAndSetPaymentStatus writes status and paid date of p only if the stored status still equals from.
	// It returns apperrors.ErrAlreadyResolved when the stored status differs.
	CompareAndSetPaymentStatus(ctx context.Context, p domain.Payment, from domain.PaymentStatus) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
	PaymentStatusUpdater
}
