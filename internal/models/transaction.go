package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the transactions table.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	UserID         string          `db:"user_id"`
	ApplicationID  string          `db:"application_id"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	MonthlyPayment decimal.Decimal `db:"monthly_payment"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
}

// LedgerEntry represents a row of the ledger_entries table.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	Kind          string          `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	EntryDate     time.Time       `db:"entry_date"`
	TransactionID *string         `db:"transaction_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Payment represents a row of the payments table.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	TransactionID string          `db:"transaction_id"`
	PaymentType   string          `db:"payment_type"`
	Amount        decimal.Decimal `db:"amount"`
	DueDate       time.Time       `db:"due_date"`
	Status        string          `db:"status"`
	PaidDate      *time.Time      `db:"paid_date"`
	CreatedAt     time.Time       `db:"created_at"`
}
