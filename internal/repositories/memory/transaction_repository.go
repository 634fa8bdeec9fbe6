package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

func (r *repo) FindTransactionByApplicationID(ctx context.Context, applicationID string) (*domain.Transaction, error) {
	var found domain.Transaction
	err := r.with(ctx, func(st *state) error {
		id, ok := st.txByApp[applicationID]
		if !ok {
			return apperrors.NewNotFoundError("transaction for application " + applicationID)
		}
		found = st.transactions[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *repo) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.with(ctx, func(st *state) error {
		if err := r.fault(OpSaveTransaction); err != nil {
			return err
		}
		if _, exists := st.txByApp[txn.ApplicationID]; exists {
			return fmt.Errorf("%w: application %s already has a transaction", apperrors.ErrDuplicate, txn.ApplicationID)
		}
		st.transactions[txn.TransactionID] = txn
		st.txByApp[txn.ApplicationID] = txn.TransactionID
		return nil
	})
}

func (r *repo) DeactivateSettledTransactions(ctx context.Context) (int64, error) {
	var changed int64
	err := r.with(ctx, func(st *state) error {
		open := make(map[string]bool)
		for _, p := range st.payments {
			if p.Status == domain.PaymentScheduled {
				open[p.TransactionID] = true
			}
		}
		for id, txn := range st.transactions {
			if txn.IsActive && !open[id] {
				txn.IsActive = false
				st.transactions[id] = txn
				changed++
			}
		}
		return nil
	})
	return changed, err
}
