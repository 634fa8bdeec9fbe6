package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DaysPerMonth is the fixed month length used for schedules and transaction terms.
const DaysPerMonth = 30

// MoneyScale is the number of decimal places money amounts are stored with.
const MoneyScale = 2

// MaxMoneyAmount bounds a single principal or entry. Doubled by a 100% rate it still
// fits the NUMERIC(15,2) columns.
var MaxMoneyAmount = decimal.NewFromInt(1_000_000_000_000)

// NormalizeAmount rounds amount to cents and checks the stored value lies in (0, MaxMoneyAmount].
func NormalizeAmount(amount decimal.Decimal, what string) (decimal.Decimal, error) {
	rounded := amount.Round(MoneyScale)
	if !rounded.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be at least 0.01", apperrors.ErrValidation, what)
	}
	if rounded.GreaterThan(MaxMoneyAmount) {
		return decimal.Zero, fmt.Errorf("%w: %s must not exceed %s", apperrors.ErrValidation, what, MaxMoneyAmount)
	}
	return rounded, nil
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances date by n schedule months of DaysPerMonth days each.
func AddMonths(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, DaysPerMonth*n)
}
