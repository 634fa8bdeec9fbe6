package memory

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (r *repo) SumByKind(ctx context.Context) (map[domain.LedgerEntryKind]decimal.Decimal, error) {
	var totals map[domain.LedgerEntryKind]decimal.Decimal
	err := r.with(ctx, func(st *state) error {
		totals = domain.TotalsByKind(st.ledger)
		return nil
	})
	return totals, err
}

func (r *repo) ListEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.with(ctx, func(st *state) error {
		entries = append(make([]domain.LedgerEntry, 0, len(st.ledger)), st.ledger...)
		return nil
	})
	return entries, err
}

func (r *repo) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return r.with(ctx, func(st *state) error {
		if err := r.fault(OpAppendEntry); err != nil {
			return err
		}
		st.ledger = append(st.ledger, entry)
		return nil
	})
}

// LockLedger is a no-op: units of work are already serialized on the store mutex.
func (r *repo) LockLedger(ctx context.Context) error {
	return ctx.Err()
}
