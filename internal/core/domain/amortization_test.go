package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAmortization(t *testing.T) {
	start := time.Date(2026, 1, 10, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name          string
		principal     string
		rate          string
		months        int
		wantTotal     string
		wantMonthly   string
		wantLastInstl string
	}{
		{"single month zero rate", "1000", "0", 1, "1000", "1000", "1000"},
		{"even split with interest", "1200", "10", 12, "1320", "110", "110"},
		{"remainder goes to last installment", "100", "0", 3, "100", "33.33", "33.34"},
		{"fractional rate", "1000", "7.5", 6, "1075", "179.16", "179.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.BuildAmortization(decimal.RequireFromString(tt.principal), decimal.RequireFromString(tt.rate), tt.months, start)
			require.NoError(t, err)

			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(got.TotalAmount), "total: %s", got.TotalAmount)
			assert.True(t, decimal.RequireFromString(tt.wantMonthly).Equal(got.MonthlyPayment), "monthly: %s", got.MonthlyPayment)
			require.Len(t, got.Installments, tt.months)
			last := got.Installments[tt.months-1]
			assert.True(t, decimal.RequireFromString(tt.wantLastInstl).Equal(last.Amount), "last: %s", last.Amount)

			sum := decimal.Zero
			for _, inst := range got.Installments {
				sum = sum.Add(inst.Amount)
			}
			assert.True(t, got.TotalAmount.Equal(sum), "installments must sum to total")
		})
	}
}

func TestBuildAmortization_Dates(t *testing.T) {
	start := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)

	got, err := domain.BuildAmortization(decimal.NewFromInt(900), decimal.Zero, 3, start)
	require.NoError(t, err)

	day := domain.DateOnly(start)
	assert.Equal(t, day, got.StartDate)
	assert.Equal(t, day.AddDate(0, 0, 90), got.EndDate)
	for i, inst := range got.Installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, day.AddDate(0, 0, 30*(i+1)), inst.DueDate)
	}
}

func TestBuildAmortization_TinyTotalNeverNegative(t *testing.T) {
	got, err := domain.BuildAmortization(decimal.RequireFromString("0.10"), decimal.Zero, 12, time.Now())
	require.NoError(t, err)
	for _, inst := range got.Installments {
		assert.False(t, inst.Amount.IsNegative())
	}
}

func TestBuildAmortization_Invalid(t *testing.T) {
	now := time.Now()

	_, err := domain.BuildAmortization(decimal.Zero, decimal.Zero, 1, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.BuildAmortization(decimal.NewFromInt(10), decimal.Zero, 0, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.BuildAmortization(decimal.NewFromInt(10), decimal.NewFromInt(101), 1, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
