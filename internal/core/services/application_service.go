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

// applicationService implements the ApplicationSvcFacade interface
type applicationService struct {
	BaseService
	uow             portsrepo.UnitOfWork
	applicationRepo portsrepo.ApplicationRepositoryFacade
	transactionRepo portsrepo.TransactionReader
	paymentRepo     portsrepo.PaymentReader
	userRepo        portsrepo.UserReader
	engine          portssvc.ApprovalEngine
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	uow portsrepo.UnitOfWork,
	applicationRepo portsrepo.ApplicationRepositoryFacade,
	transactionRepo portsrepo.TransactionReader,
	paymentRepo portsrepo.PaymentReader,
	userRepo portsrepo.UserReader,
	engine portssvc.ApprovalEngine,
	options ...ServiceOption,
) portssvc.ApplicationSvcFacade {
	s := &applicationService{
		uow:             uow,
		applicationRepo: applicationRepo,
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		userRepo:        userRepo,
		engine:          engine,
	}
	applyOptions(&s.BaseService, options)
	return s
}

var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

func (s *applicationService) CreateApplication(ctx context.Context, owner domain.Principal, appType domain.ApplicationType, amount decimal.Decimal, durationMonths int) (*domain.Application, error) {
	app, err := domain.NewApplication(uuid.NewString(), owner, appType, amount, durationMonths, s.Now())
	if err != nil {
		s.LogDebug(ctx, "Rejected application request",
			slog.String("user_id", owner.UserID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.applicationRepo.SaveApplication(ctx, *app); err != nil {
		s.LogError(ctx, err, "Failed to save application", slog.String("user_id", owner.UserID))
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.LogInfo(ctx, "Application created",
		slog.String("application_id", app.ApplicationID),
		slog.String("user_id", app.UserID),
		slog.String("type", string(app.Type)))
	return app, nil
}

func (s *applicationService) ReviewApplication(ctx context.Context, applicationID string, reviewerID string, decision domain.ReviewDecision, interestRate *decimal.Decimal) (*domain.Application, error) {
	target, err := decision.Status()
	if err != nil {
		return nil, err
	}

	reviewer, err := s.userRepo.FindUserByID(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewer: %w", err)
	}
	if !reviewer.Principal().CanReview() {
		return nil, fmt.Errorf("%w: user %s may not review applications", apperrors.ErrForbidden, reviewerID)
	}

	if target == domain.StatusApproved {
		if err := domain.ValidateInterestRate(interestRate); err != nil {
			return nil, err
		}
		result, err := s.engine.Approve(ctx, applicationID, reviewerID, *interestRate)
		if err != nil {
			return nil, err
		}
		return &result.Application, nil
	}

	var rejected *domain.Application
	err = s.uow.WithinTx(ctx, func(ctx context.Context, r portsrepo.TxRepositories) error {
		app, err := r.Applications.FindApplicationByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if err := app.Apply(domain.Review{
			To:           domain.StatusRejected,
			ReviewerID:   reviewerID,
			InterestRate: interestRate,
			ReviewedAt:   s.Now(),
		}); err != nil {
			return err
		}
		if err := r.Applications.CompareAndSetStatus(ctx, *app, domain.StatusPending); err != nil {
			return err
		}
		rejected = app
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reject application", slog.String("application_id", applicationID))
		return nil, err
	}

	s.LogInfo(ctx, "Application rejected",
		slog.String("application_id", applicationID),
		slog.String("reviewer_id", reviewerID))
	return rejected, nil
}

func (s *applicationService) GetApplication(ctx context.Context, applicationID string, caller domain.Principal) (*domain.Application, error) {
	app, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && app.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: application %s belongs to another user", apperrors.ErrForbidden, applicationID)
	}
	return app, nil
}

func (s *applicationService) ListApplications(ctx context.Context, callerID string, isAdmin bool) ([]domain.Application, error) {
	var owner *string
	if !isAdmin {
		owner = &callerID
	}
	apps, err := s.applicationRepo.ListApplications(ctx, owner)
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications", slog.String("user_id", callerID))
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

func (s *applicationService) GetApplicationSchedule(ctx context.Context, applicationID string, caller domain.Principal) (*domain.Transaction, []domain.Payment, error) {
	app, err := s.GetApplication(ctx, applicationID, caller)
	if err != nil {
		return nil, nil, err
	}
	if app.Status != domain.StatusApproved {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("application %s has no transaction", applicationID))
	}

	txn, err := s.transactionRepo.FindTransactionByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByTransactionID(ctx, txn.TransactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return txn, payments, nil
}
