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

// approvalEngine turns a pending application into a transaction, a ledger entry and a
// payment schedule inside one unit of work.
type approvalEngine struct {
	BaseService
	uow portsrepo.UnitOfWork
}

// NewApprovalEngine creates a new ApprovalEngine.
func NewApprovalEngine(uow portsrepo.UnitOfWork, options ...ServiceOption) portssvc.ApprovalEngine {
	e := &approvalEngine{uow: uow}
	applyOptions(&e.BaseService, options)
	return e
}

var _ portssvc.ApprovalEngine = (*approvalEngine)(nil)

func (e *approvalEngine) Approve(ctx context.Context, applicationID string, reviewerID string, interestRate decimal.Decimal) (*domain.ApprovalResult, error) {
	var result *domain.ApprovalResult

	err := e.uow.WithinTx(ctx, func(ctx context.Context, r portsrepo.TxRepositories) error {
		// Row lock first, ledger lock second. Every writer takes them in this order.
		app, err := r.Applications.FindApplicationByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if app.Status != domain.StatusPending {
			return fmt.Errorf("%w: application %s is already %s", apperrors.ErrInvalidTransition, app.ApplicationID, app.Status)
		}

		now := e.Now()
		terms, err := domain.BuildAmortization(app.Amount, interestRate, app.DurationMonths, now)
		if err != nil {
			return err
		}

		if err := r.Ledger.LockLedger(ctx); err != nil {
			return fmt.Errorf("failed to lock ledger: %w", err)
		}
		if app.Type == domain.Loan {
			totals, err := r.Ledger.SumByKind(ctx)
			if err != nil {
				return fmt.Errorf("failed to read ledger balance: %w", err)
			}
			balance := domain.BalanceFromTotals(totals)
			if app.Amount.GreaterThan(balance) {
				return fmt.Errorf("%w: loan of %s exceeds available balance %s", apperrors.ErrInsufficientFunds, app.Amount, balance)
			}
		}

		if err := app.Apply(domain.Review{
			To:           domain.StatusApproved,
			ReviewerID:   reviewerID,
			InterestRate: &interestRate,
			ReviewedAt:   now,
		}); err != nil {
			return err
		}
		if err := r.Applications.CompareAndSetStatus(ctx, *app, domain.StatusPending); err != nil {
			return err
		}

		txn := domain.Transaction{
			TransactionID:  uuid.NewString(),
			UserID:         app.UserID,
			ApplicationID:  app.ApplicationID,
			StartDate:      terms.StartDate,
			EndDate:        terms.EndDate,
			MonthlyPayment: terms.MonthlyPayment,
			TotalAmount:    terms.TotalAmount,
			IsActive:       true,
			CreatedAt:      now,
		}
		if err := r.Transactions.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}

		txnID := txn.TransactionID
		entry, err := domain.NewLedgerEntry(uuid.NewString(), domain.IssuanceKind(app.Type), app.Amount, terms.StartDate, &txnID, now)
		if err != nil {
			return err
		}
		if err := r.Ledger.AppendEntry(ctx, *entry); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		payments := make([]domain.Payment, len(terms.Installments))
		for i, inst := range terms.Installments {
			payments[i] = domain.Payment{
				PaymentID:     uuid.NewString(),
				TransactionID: txn.TransactionID,
				PaymentType:   app.Type,
				Amount:        inst.Amount,
				DueDate:       inst.DueDate,
				Status:        domain.PaymentScheduled,
				CreatedAt:     now,
			}
		}
		if err := r.Payments.SavePayments(ctx, payments); err != nil {
			return fmt.Errorf("failed to save payment schedule: %w", err)
		}

		result = &domain.ApprovalResult{
			Application: *app,
			Transaction: txn,
			LedgerEntry: *entry,
			Payments:    payments,
		}
		return nil
	})
	if err != nil {
		e.LogError(ctx, err, "Approval failed",
			slog.String("application_id", applicationID),
			slog.String("reviewer_id", reviewerID))
		return nil, err
	}

	e.LogInfo(ctx, "Application approved",
		slog.String("application_id", applicationID),
		slog.String("transaction_id", result.Transaction.TransactionID),
		slog.String("ledger_entry_kind", string(result.LedgerEntry.Kind)),
		slog.Int("payments", len(result.Payments)))
	return result, nil
}
