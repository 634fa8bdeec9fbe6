package services

import (
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The approval engine is shared by the application service and exposed directly
	container.Approval = NewApprovalEngine(repos.UnitOfWork, options...)

	container.User = NewUserService(repos.UserRepo, options...)
	container.Application = NewApplicationService(
		repos.UnitOfWork,
		repos.ApplicationRepo,
		repos.TransactionRepo,
		repos.PaymentRepo,
		repos.UserRepo,
		container.Approval,
		options...,
	)
	container.Ledger = NewLedgerService(repos.UnitOfWork, repos.LedgerRepo, options...)
	container.Payment = NewPaymentService(repos.PaymentRepo, options...)
	container.Maintenance = NewMaintenanceService(repos.TransactionRepo, options...)

	return container
}
