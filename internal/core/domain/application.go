package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ApplicationType distinguishes loans from deposits.
type ApplicationType string

const (
	Loan    ApplicationType = "loan"
	Deposit ApplicationType = "deposit"
)

// IsValid reports whether t is a known application type.
func (t ApplicationType) IsValid() bool {
	return t == Loan || t == Deposit
}

// RequiredRole is the role an owner must hold to submit an application of type t.
func (t ApplicationType) RequiredRole() Role {
	if t == Deposit {
		return RoleProvider
	}
	return RoleBorrower
}

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transitions are permitted from s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ReviewDecision is what a reviewer decides about a pending application.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// Status maps a decision to the status it transitions into.
func (d ReviewDecision) Status() (ApplicationStatus, error) {
	switch d {
	case DecisionApprove:
		return StatusApproved, nil
	case DecisionReject:
		return StatusRejected, nil
	}
	return "", fmt.Errorf("%w: unknown review decision %q", apperrors.ErrValidation, d)
}

// Application is a funding request awaiting bank review.
type Application struct {
	ApplicationID  string            `json:"applicationID"`
	UserID         string            `json:"userID"`
	Type           ApplicationType   `json:"applicationType"`
	Amount         decimal.Decimal   `json:"amount"`
	DurationMonths int               `json:"durationMonths"`
	InterestRate   *decimal.Decimal  `json:"interestRate"` // Null until reviewed
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	ReviewedBy     *string           `json:"reviewedBy"`
	ReviewedAt     *time.Time        `json:"reviewedAt"`
}

// NewApplication validates the request against the owner's role and returns a pending application.
func NewApplication(id string, owner Principal, appType ApplicationType, amount decimal.Decimal, durationMonths int, now time.Time) (*Application, error) {
	if !appType.IsValid() {
		return nil, fmt.Errorf("%w: unknown application type %q", apperrors.ErrValidation, appType)
	}
	amount, err := NormalizeAmount(amount, "amount")
	if err != nil {
		return nil, err
	}
	if durationMonths <= 0 {
		return nil, fmt.Errorf("%w: duration must be at least one month", apperrors.ErrValidation)
	}
	if owner.Role != appType.RequiredRole() {
		return nil, fmt.Errorf("%w: only %s users can submit %s applications", apperrors.ErrRoleMismatch, appType.RequiredRole(), appType)
	}
	return &Application{
		ApplicationID:  id,
		UserID:         owner.UserID,
		Type:           appType,
		Amount:         amount,
		DurationMonths: durationMonths,
		Status:         StatusPending,
		CreatedAt:      now,
	}, nil
}

// ValidateInterestRate checks a percentage lies within [0, 100].
func ValidateInterestRate(rate *decimal.Decimal) error {
	if rate == nil {
		return fmt.Errorf("%w: interest rate is required to approve", apperrors.ErrValidation)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: interest rate must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}

// Review describes a single status transition out of pending.
type Review struct {
	To           ApplicationStatus
	ReviewerID   string
	InterestRate *decimal.Decimal
	ReviewedAt   time.Time
}

// Apply transitions the application. Only pending applications may transition, and only into
// a terminal status; approvals must carry a valid interest rate.
func (a *Application) Apply(r Review) error {
	if a.Status != StatusPending || !r.To.IsTerminal() {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, a.Status, r.To)
	}
	if r.To == StatusApproved {
		if err := ValidateInterestRate(r.InterestRate); err != nil {
			return err
		}
	}
	reviewer := r.ReviewerID
	at := r.ReviewedAt
	a.Status = r.To
	a.ReviewedBy = &reviewer
	a.ReviewedAt = &at
	if r.InterestRate != nil {
		rate := r.InterestRate.Round(MoneyScale)
		a.InterestRate = &rate
	}
	return nil
}
