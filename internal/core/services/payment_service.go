package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, options ...ServiceOption) portssvc.PaymentSvcFacade {
	s := &paymentService{paymentRepo: paymentRepo}
	applyOptions(&s.BaseService, options)
	return s
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) ListPayments(ctx context.Context, callerID string, isAdmin bool) ([]domain.Payment, error) {
	var owner *string
	if !isAdmin {
		owner = &callerID
	}
	payments, err := s.paymentRepo.ListPayments(ctx, owner)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("user_id", callerID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

func (s *paymentService) UpdatePaymentStatus(ctx context.Context, paymentID string, callerID string, isAdmin bool, newStatus string) (*domain.Payment, error) {
	status, err := domain.ParseResolution(newStatus)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, paymentID, callerID, isAdmin, status)
}

func (s *paymentService) MarkPaid(ctx context.Context, paymentID string, actor domain.Principal) (*domain.Payment, error) {
	return s.resolve(ctx, paymentID, actor.UserID, actor.IsAdmin, domain.PaymentPaid)
}

func (s *paymentService) MarkFailed(ctx context.Context, paymentID string, actor domain.Principal) (*domain.Payment, error) {
	return s.resolve(ctx, paymentID, actor.UserID, actor.IsAdmin, domain.PaymentFailed)
}

func (s *paymentService) resolve(ctx context.Context, paymentID string, callerID string, isAdmin bool, status domain.PaymentStatus) (*domain.Payment, error) {
	found, err := s.paymentRepo.FindPaymentWithOwner(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && found.OwnerID != callerID {
		return nil, fmt.Errorf("%w: payment %s belongs to another user", apperrors.ErrForbidden, paymentID)
	}

	payment := found.Payment
	if err := payment.Resolve(status, s.Now()); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.CompareAndSetPaymentStatus(ctx, payment, domain.PaymentScheduled); err != nil {
		s.LogDebug(ctx, "Payment status not updated",
			slog.String("payment_id", paymentID),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Payment resolved",
		slog.String("payment_id", paymentID),
		slog.String("status", string(payment.Status)),
		slog.String("user_id", callerID))
	return &payment, nil
}
