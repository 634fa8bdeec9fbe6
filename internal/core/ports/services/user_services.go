package services

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/SscSPs/loan_ledger_app/internal/dto"
)

// UserReaderSvc defines read operations for users
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetPrincipal resolves a user id into the role-bearing principal the core works with.
	GetPrincipal(ctx context.Context, userID string) (domain.Principal, error)
}

// UserWriterSvc defines write operations for users
type UserWriterSvc interface {
	// CreateUser stores a user with a hashed password, replacing one with the same username.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
}

// UserAuthenticatorSvc checks credentials
type UserAuthenticatorSvc interface {
	// Authenticate returns the user whose credentials match.
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
