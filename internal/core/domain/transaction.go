package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the materialized outcome of one approved application.
type Transaction struct {
	TransactionID  string          `json:"transactionID"` // Primary Key (e.g., UUID)
	UserID         string          `json:"userID"`
	ApplicationID  string          `json:"applicationID"` // Unique: one transaction per application
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ApprovalResult groups every row produced by a single approval.
type ApprovalResult struct {
	Application Application
	Transaction Transaction
	LedgerEntry LedgerEntry
	Payments    []Payment
}
