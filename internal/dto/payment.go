package dto

import (
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdatePaymentStatusRequest carries the requested payment status.
// Allowed values are checked by the service so that unknown values map to ErrInvalidStatus.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string                 `json:"paymentID"`
	TransactionID string                 `json:"transactionID"`
	PaymentType   domain.ApplicationType `json:"paymentType"`
	Amount        decimal.Decimal        `json:"amount"`
	DueDate       time.Time              `json:"dueDate"`
	Status        domain.PaymentStatus   `json:"status"`
	PaidDate      *time.Time             `json:"paidDate,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		TransactionID: p.TransactionID,
		PaymentType:   p.PaymentType,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		Status:        p.Status,
		PaidDate:      p.PaidDate,
	}
}

// ToPaymentResponses converts a slice of domain.Payment.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
