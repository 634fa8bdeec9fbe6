package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Application represents a row of the applications table.
type Application struct {
	ApplicationID   string           `db:"application_id"`
	UserID          string           `db:"user_id"`
	ApplicationType string           `db:"application_type"`
	Amount          decimal.Decimal  `db:"amount"`
	DurationMonths  int              `db:"duration_months"`
	InterestRate    *decimal.Decimal `db:"interest_rate"`
	Status          string           `db:"status"`
	CreatedAt       time.Time        `db:"created_at"`
	ReviewedBy      *string          `db:"reviewed_by"`
	ReviewedAt      *time.Time       `db:"reviewed_at"`
}
