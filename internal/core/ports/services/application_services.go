package services

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplicationReaderSvc defines read operations for applications
type ApplicationReaderSvc interface {
	// GetApplication retrieves an application visible to the caller.
	GetApplication(ctx context.Context, applicationID string, caller domain.Principal) (*domain.Application, error)

	// ListApplications returns every application to admins and only self-owned ones otherwise.
	ListApplications(ctx context.Context, callerID string, isAdmin bool) ([]domain.Application, error)

	// GetApplicationSchedule retrieves the transaction and payments produced by an approved application.
	GetApplicationSchedule(ctx context.Context, applicationID string, caller domain.Principal) (*domain.Transaction, []domain.Payment, error)
}

// ApplicationWriterSvc defines write operations for applications
type ApplicationWriterSvc interface {
	// CreateApplication validates role/type consistency and stores a pending application.
	CreateApplication(ctx context.Context, owner domain.Principal, appType domain.ApplicationType, amount decimal.Decimal, durationMonths int) (*domain.Application, error)

	// ReviewApplication approves (through the approval engine) or rejects a pending application.
	ReviewApplication(ctx context.Context, applicationID string, reviewerID string, decision domain.ReviewDecision, interestRate *decimal.Decimal) (*domain.Application, error)
}

// ApplicationSvcFacade combines all application-related service interfaces
type ApplicationSvcFacade interface {
	ApplicationReaderSvc
	ApplicationWriterSvc
}
