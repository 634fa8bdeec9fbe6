package pgsql

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_ledger_app/internal/models"
	"github.com/SscSPs/loan_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository stores the append-only cash ledger. It has no update or delete path.
type PgxLedgerRepository struct {
	db dbtx
}

func newPgxLedgerRepository(db dbtx) *PgxLedgerRepository {
	return &PgxLedgerRepository{db: db}
}

var (
	_ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)
	_ portsrepo.LedgerTxRepository     = (*PgxLedgerRepository)(nil)
)

// SumByKind aggregates the whole ledger in a single statement so the totals come from one snapshot.
func (r *PgxLedgerRepository) SumByKind(ctx context.Context) (map[domain.LedgerEntryKind]decimal.Decimal, error) {
	rows, err := r.db.Query(ctx, `SELECT kind, COALESCE(SUM(amount), 0) FROM ledger_entries GROUP BY kind;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate ledger", err)
	}
	defer rows.Close()

	totals := make(map[domain.LedgerEntryKind]decimal.Decimal, 4)
	for rows.Next() {
		var kind string
		var sum decimal.Decimal
		if err := rows.Scan(&kind, &sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger totals", err)
		}
		totals[domain.LedgerEntryKind(kind)] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger totals", err)
	}
	return totals, nil
}

func (r *PgxLedgerRepository) ListEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, kind, amount, entry_date, transaction_id, created_at
		FROM ledger_entries
		ORDER BY created_at, entry_id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(&m.EntryID, &m.Kind, &m.Amount, &m.EntryDate, &m.TransactionID, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate ledger entries", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (entry_id, kind, amount, entry_date, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := r.db.Exec(ctx, query, m.EntryID, m.Kind, m.Amount, m.EntryDate, m.TransactionID, m.CreatedAt); err != nil {
		return writeFailed(err, "failed to append ledger entry")
	}
	return nil
}

// LockLedger takes a transaction-scoped advisory lock; it is released on commit or rollback.
func (r *PgxLedgerRepository) LockLedger(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, ledgerLockKey); err != nil {
		return apperrors.NewAppError(500, "failed to lock ledger", err)
	}
	return nil
}
