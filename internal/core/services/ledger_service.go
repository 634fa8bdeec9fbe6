package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService exposes the cash ledger.
type ledgerService struct {
	BaseService
	uow        portsrepo.UnitOfWork
	ledgerRepo portsrepo.LedgerReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(uow portsrepo.UnitOfWork, ledgerRepo portsrepo.LedgerReader, options ...ServiceOption) portssvc.LedgerSvcFacade {
	s := &ledgerService{uow: uow, ledgerRepo: ledgerRepo}
	applyOptions(&s.BaseService, options)
	return s
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	totals, err := s.ledgerRepo.SumByKind(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger")
		return decimal.Zero, fmt.Errorf("failed to compute balance: %w", err)
	}
	return domain.BalanceFromTotals(totals), nil
}

func (s *ledgerService) ListEntries(ctx context.Context, caller domain.Principal) ([]domain.LedgerEntry, error) {
	if !caller.IsAdmin {
		return nil, fmt.Errorf("%w: only admins may list ledger entries", apperrors.ErrForbidden)
	}
	entries, err := s.ledgerRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, nil
}

// AppendCompensatingEntry goes through the same locked write path as approvals, so an
// outflow correction can never drive the balance below zero.
func (s *ledgerService) AppendCompensatingEntry(ctx context.Context, caller domain.Principal, kind domain.LedgerEntryKind, amount decimal.Decimal, transactionID *string) (*domain.LedgerEntry, error) {
	if !caller.IsAdmin {
		return nil, fmt.Errorf("%w: only admins may append ledger entries", apperrors.ErrForbidden)
	}
	now := s.Now()
	entry, err := domain.NewLedgerEntry(uuid.NewString(), kind, amount, now, transactionID, now)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, r portsrepo.TxRepositories) error {
		if err := r.Ledger.LockLedger(ctx); err != nil {
			return fmt.Errorf("failed to lock ledger: %w", err)
		}
		if !kind.IsInflow() {
			totals, err := r.Ledger.SumByKind(ctx)
			if err != nil {
				return err
			}
			if balance := domain.BalanceFromTotals(totals); entry.Amount.GreaterThan(balance) {
				return fmt.Errorf("%w: entry of %s exceeds available balance %s", apperrors.ErrInsufficientFunds, entry.Amount, balance)
			}
		}
		return r.Ledger.AppendEntry(ctx, *entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to append compensating entry", slog.String("kind", string(kind)))
		return nil, err
	}

	s.LogInfo(ctx, "Compensating ledger entry appended",
		slog.String("entry_id", entry.EntryID),
		slog.String("kind", string(entry.Kind)),
		slog.String("amount", entry.Amount.String()),
		slog.String("user_id", caller.UserID))
	return entry, nil
}
