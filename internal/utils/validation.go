package utils

import (
	"reflect"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the custom binding validators on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	registerDecimalRules(v)
	if err := v.RegisterValidation("dgt0", decimalGreaterThanZero); err != nil {
		return err
	}
	return v.RegisterValidation("dmax", decimalWithinMax)
}

// registerDecimalRules makes decimal.Decimal validate as its exact string form.
// Without it the validator treats the field as a nested struct and skips field tags.
func registerDecimalRules(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// fieldDecimal reads the field as a decimal rounded to the stored money scale.
func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	switch d := fl.Field().Interface().(type) {
	case string:
		parsed, err := decimal.NewFromString(d)
		if err != nil {
			return decimal.Zero, false
		}
		return parsed.Round(domain.MoneyScale), true
	case decimal.Decimal:
		return d.Round(domain.MoneyScale), true
	case *decimal.Decimal:
		if d == nil {
			return decimal.Zero, false
		}
		return d.Round(domain.MoneyScale), true
	}
	return decimal.Zero, false
}

// decimalGreaterThanZero backs the "dgt0" tag: the amount is positive once rounded to cents.
func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.IsPositive()
}

// decimalWithinMax backs the "dmax" tag: the rounded amount does not exceed domain.MaxMoneyAmount.
func decimalWithinMax(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.LessThanOrEqual(domain.MaxMoneyAmount)
}
