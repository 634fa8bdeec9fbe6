package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can run
// either standalone or bound to a unit of work.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// PostgreSQL error codes the repositories translate into domain errors.
const (
	pgUniqueViolation        = "23505"
	pgForeignKeyViolation    = "23503"
	pgCheckViolation         = "23514"
	pgInvalidTextRepr        = "22P02"
	pgNumericValueOutOfRange = "22003"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// notFoundOr maps pgx.ErrNoRows to a not-found error and wraps anything else.
// An id that does not parse as a UUID cannot match a row either.
func notFoundOr(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == pgInvalidTextRepr {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return apperrors.NewAppError(500, "failed to query "+what, err)
}

// writeFailed maps rows rejected by column types, bounds or constraints to a
// validation error and wraps anything else.
func writeFailed(err error, message string) error {
	switch pgErrorCode(err) {
	case pgNumericValueOutOfRange, pgCheckViolation:
		return apperrors.NewAppError(400, message+": value out of range", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	case pgInvalidTextRepr, pgForeignKeyViolation:
		return apperrors.NewAppError(400, message+": unknown reference", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	return apperrors.NewAppError(500, message, err)
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}
