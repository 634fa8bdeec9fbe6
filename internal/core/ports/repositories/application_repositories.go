package repositories

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

// ApplicationReader defines read operations for application data
type ApplicationReader interface {
	// FindApplicationByID retrieves a specific application by its unique identifier.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)

	// ListApplications retrieves applications, restricted to ownerID when it is non-nil.
	ListApplications(ctx context.Context, ownerID *string) ([]domain.Application, error)
}

// ApplicationWriter defines write operations for application data
type ApplicationWriter interface {
	// SaveApplication persists a new application.
	SaveApplication(ctx context.Context, app domain.Application) error
}

// ApplicationTransitioner defines the status change operations used inside a unit of work
type ApplicationTransitioner interface {
	// FindApplicationByIDForUpdate retrieves an application and locks it until the unit of work ends.
	FindApplicationByIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error)

	// CompareAndSetStatus writes the review fields of app only if the stored status still equals from.
	// It returns apperrors.ErrInvalidTransition when another writer got there first.
	CompareAndSetStatus(ctx context.Context, app domain.Application, from domain.ApplicationStatus) error
}

// ApplicationRepositoryFacade combines the application interfaces used outside a unit of work
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}

// ApplicationTxRepository is the application repository bound to a unit of work
type ApplicationTxRepository interface {
	ApplicationReader
	ApplicationTransitioner
}
