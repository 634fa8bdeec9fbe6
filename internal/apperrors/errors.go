package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the actor lacks capability over the target entity.
var ErrForbidden = errors.New("forbidden")

// ErrRoleMismatch indicates the owner's role does not allow the requested application type.
var ErrRoleMismatch = errors.New("role does not match application type")

// ErrInvalidTransition indicates an illegal application status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInsufficientFunds indicates a loan exceeds the available ledger balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAlreadyResolved indicates a payment has already left the scheduled state.
var ErrAlreadyResolved = errors.New("payment already resolved")

// ErrInvalidStatus indicates a requested payment status outside {paid, failed}.
var ErrInvalidStatus = errors.New("invalid payment status")

// AppError carries an HTTP-ish status code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
