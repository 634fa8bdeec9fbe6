package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Installment is one dated amount of an amortization schedule.
type Installment struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
}

// Amortization holds the terms derived from an approved application.
type Amortization struct {
	TotalAmount    decimal.Decimal
	MonthlyPayment decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	Installments   []Installment
}

// BuildAmortization computes total = principal * (1 + rate/100) and splits it into months
// installments due every DaysPerMonth days after start.
//
// The regular installment is total/months rounded down to cents; the final installment
// absorbs the remainder so the installments always sum to total.
func BuildAmortization(principal, rate decimal.Decimal, months int, start time.Time) (Amortization, error) {
	if !principal.IsPositive() {
		return Amortization{}, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	if months <= 0 {
		return Amortization{}, fmt.Errorf("%w: duration must be at least one month", apperrors.ErrValidation)
	}
	if err := ValidateInterestRate(&rate); err != nil {
		return Amortization{}, err
	}

	start = DateOnly(start)
	total := principal.Mul(decimal.NewFromInt(1).Add(rate.Div(hundred))).Round(MoneyScale)
	monthly := total.Div(decimal.NewFromInt(int64(months))).RoundFloor(MoneyScale)

	installments := make([]Installment, months)
	allocated := decimal.Zero
	for k := 1; k <= months; k++ {
		amount := monthly
		if k == months {
			amount = total.Sub(allocated)
		}
		installments[k-1] = Installment{
			Number:  k,
			DueDate: AddMonths(start, k),
			Amount:  amount,
		}
		allocated = allocated.Add(amount)
	}

	return Amortization{
		TotalAmount:    total,
		MonthlyPayment: monthly,
		StartDate:      start,
		EndDate:        AddMonths(start, months),
		Installments:   installments,
	}, nil
}
