package dto

import (
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateApplicationRequest defines the data needed to submit an application.
// The application type is derived from the owner's role.
type CreateApplicationRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required,dgt0,dmax"`
	DurationMonths int             `json:"durationMonths" binding:"required,gt=0"`
	UserID         *string         `json:"userID"` // Admins may submit on behalf of another user
}

// ReviewApplicationRequest carries a reviewer's decision.
type ReviewApplicationRequest struct {
	Decision     domain.ReviewDecision `json:"decision" binding:"required,oneof=approve reject"`
	InterestRate *decimal.Decimal      `json:"interestRate"`
}

// ApplicationResponse defines the data returned for an application.
type ApplicationResponse struct {
	ApplicationID   string                   `json:"applicationID"`
	UserID          string                   `json:"userID"`
	ApplicationType domain.ApplicationType   `json:"applicationType"`
	Amount          decimal.Decimal          `json:"amount"`
	DurationMonths  int                      `json:"durationMonths"`
	InterestRate    *decimal.Decimal         `json:"interestRate"`
	Status          domain.ApplicationStatus `json:"status"`
	CreatedAt       time.Time                `json:"createdAt"`
	ReviewedBy      *string                  `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time               `json:"reviewedAt,omitempty"`
}

// ToApplicationResponse converts a domain.Application to ApplicationResponse DTO.
func ToApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID:   a.ApplicationID,
		UserID:          a.UserID,
		ApplicationType: a.Type,
		Amount:          a.Amount,
		DurationMonths:  a.DurationMonths,
		InterestRate:    a.InterestRate,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		ReviewedBy:      a.ReviewedBy,
		ReviewedAt:      a.ReviewedAt,
	}
}

// ToApplicationResponses converts a slice of domain.Application.
func ToApplicationResponses(apps []domain.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, len(apps))
	for i := range apps {
		responses[i] = ToApplicationResponse(&apps[i])
	}
	return responses
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	ApplicationID  string          `json:"applicationID"`
	UserID         string          `json:"userID"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	IsActive       bool            `json:"isActive"`
}

// ScheduleResponse combines a transaction with its payments.
type ScheduleResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Payments    []PaymentResponse   `json:"payments"`
}

// ToScheduleResponse converts a transaction and its payments.
func ToScheduleResponse(t *domain.Transaction, payments []domain.Payment) ScheduleResponse {
	return ScheduleResponse{
		Transaction: TransactionResponse{
			TransactionID:  t.TransactionID,
			ApplicationID:  t.ApplicationID,
			UserID:         t.UserID,
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			MonthlyPayment: t.MonthlyPayment,
			TotalAmount:    t.TotalAmount,
			IsActive:       t.IsActive,
		},
		Payments: ToPaymentResponses(payments),
	}
}
