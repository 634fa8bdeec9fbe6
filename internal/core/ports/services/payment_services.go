package services

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	// ListPayments returns every payment to admins and payments of self-owned transactions otherwise.
	ListPayments(ctx context.Context, callerID string, isAdmin bool) ([]domain.Payment, error)
}

// PaymentWriterSvc defines status changes on payments
type PaymentWriterSvc interface {
	// UpdatePaymentStatus moves a scheduled payment into newStatus (paid or failed).
	UpdatePaymentStatus(ctx context.Context, paymentID string, callerID string, isAdmin bool, newStatus string) (*domain.Payment, error)

	// MarkPaid resolves a payment as paid with today's paid date.
	MarkPaid(ctx context.Context, paymentID string, actor domain.Principal) (*domain.Payment, error)

	// MarkFailed resolves a payment as failed.
	MarkFailed(ctx context.Context, paymentID string, actor domain.Principal) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}

// TransactionMaintenanceSvc runs housekeeping on transactions
type TransactionMaintenanceSvc interface {
	// DeactivateSettledTransactions clears the active flag once no payment of a transaction is scheduled.
	DeactivateSettledTransactions(ctx context.Context) (int64, error)
}
