package services

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApprovalEngine materializes an approved application.
type ApprovalEngine interface {
	// Approve transitions a pending application to approved and creates its transaction,
	// ledger entry and payment schedule as one atomic unit.
	Approve(ctx context.Context, applicationID string, reviewerID string, interestRate decimal.Decimal) (*domain.ApprovalResult, error)
}
