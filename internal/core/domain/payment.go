package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a scheduled installment.
type PaymentStatus string

const (
	PaymentScheduled PaymentStatus = "scheduled"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
)

// ParseResolution accepts only the statuses a payment may be moved into.
func ParseResolution(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPaid, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q is not one of paid, failed", apperrors.ErrInvalidStatus, s)
}

// Payment is one scheduled installment of a transaction.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	TransactionID string          `json:"transactionID"`
	PaymentType   ApplicationType `json:"paymentType"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	Status        PaymentStatus   `json:"status"`
	PaidDate      *time.Time      `json:"paidDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Resolve moves a scheduled payment into paid or failed.
func (p *Payment) Resolve(status PaymentStatus, at time.Time) error {
	if status != PaymentPaid && status != PaymentFailed {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}
	if p.Status != PaymentScheduled {
		return fmt.Errorf("%w: payment %s is %s", apperrors.ErrAlreadyResolved, p.PaymentID, p.Status)
	}
	p.Status = status
	if status == PaymentPaid {
		paid := DateOnly(at)
		p.PaidDate = &paid
	}
	return nil
}

// PaymentWithOwner is a payment together with the user owning its parent transaction.
type PaymentWithOwner struct {
	Payment
	OwnerID string
}
