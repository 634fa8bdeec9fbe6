package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

func (r *repo) FindPaymentWithOwner(ctx context.Context, paymentID string) (*domain.PaymentWithOwner, error) {
	var found domain.PaymentWithOwner
	err := r.with(ctx, func(st *state) error {
		p, ok := st.payments[paymentID]
		if !ok {
			return apperrors.NewNotFoundError("payment " + paymentID)
		}
		found = domain.PaymentWithOwner{Payment: p, OwnerID: st.transactions[p.TransactionID].UserID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *repo) ListPayments(ctx context.Context, ownerID *string) ([]domain.Payment, error) {
	return r.listPayments(ctx, func(st *state, p domain.Payment) bool {
		return ownerID == nil || st.transactions[p.TransactionID].UserID == *ownerID
	})
}

func (r *repo) ListPaymentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	return r.listPayments(ctx, func(_ *state, p domain.Payment) bool {
		return p.TransactionID == transactionID
	})
}

func (r *repo) listPayments(ctx context.Context, keep func(st *state, p domain.Payment) bool) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.with(ctx, func(st *state) error {
		payments = make([]domain.Payment, 0)
		for _, id := range st.paymentOrder {
			if p := st.payments[id]; keep(st, p) {
				payments = append(payments, p)
			}
		}
		return nil
	})
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].DueDate.Before(payments[j].DueDate)
	})
	return payments, err
}

func (r *repo) SavePayments(ctx context.Context, payments []domain.Payment) error {
	return r.with(ctx, func(st *state) error {
		if err := r.fault(OpSavePayments); err != nil {
			return err
		}
		for _, p := range payments {
			if _, exists := st.payments[p.PaymentID]; exists {
				return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, p.PaymentID)
			}
		}
		for _, p := range payments {
			st.payments[p.PaymentID] = p
			st.paymentOrder = append(st.paymentOrder, p.PaymentID)
		}
		return nil
	})
}

func (r *repo) CompareAndSetPaymentStatus(ctx context.Context, p domain.Payment, from domain.PaymentStatus) error {
	return r.with(ctx, func(st *state) error {
		if err := r.fault(OpSetPaymentStatus); err != nil {
			return err
		}
		stored, ok := st.payments[p.PaymentID]
		if !ok {
			return apperrors.NewNotFoundError("payment " + p.PaymentID)
		}
		if stored.Status != from {
			return fmt.Errorf("%w: payment %s is %s", apperrors.ErrAlreadyResolved, p.PaymentID, stored.Status)
		}
		stored.Status = p.Status
		stored.PaidDate = p.PaidDate
		st.payments[p.PaymentID] = stored
		return nil
	})
}
