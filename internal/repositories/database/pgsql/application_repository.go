package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_ledger_app/internal/models"
	"github.com/SscSPs/loan_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `application_id, user_id, application_type, amount, duration_months,
	interest_rate, status, created_at, reviewed_by, reviewed_at`

// PgxApplicationRepository stores applications in PostgreSQL.
type PgxApplicationRepository struct {
	db dbtx
}

func newPgxApplicationRepository(db dbtx) *PgxApplicationRepository {
	return &PgxApplicationRepository{db: db}
}

var (
	_ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)
	_ portsrepo.ApplicationTxRepository     = (*PgxApplicationRepository)(nil)
)

func scanApplication(row pgx.Row) (domain.Application, error) {
	var m models.Application
	err := row.Scan(
		&m.ApplicationID,
		&m.UserID,
		&m.ApplicationType,
		&m.Amount,
		&m.DurationMonths,
		&m.InterestRate,
		&m.Status,
		&m.CreatedAt,
		&m.ReviewedBy,
		&m.ReviewedAt,
	)
	if err != nil {
		return domain.Application{}, err
	}
	return mapping.ToDomainApplication(m), nil
}

func (r *PgxApplicationRepository) SaveApplication(ctx context.Context, app domain.Application) error {
	m := mapping.ToModelApplication(app)
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.ApplicationID,
		m.UserID,
		m.ApplicationType,
		m.Amount,
		m.DurationMonths,
		m.InterestRate,
		m.Status,
		m.CreatedAt,
		m.ReviewedBy,
		m.ReviewedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: application %s", apperrors.ErrDuplicate, app.ApplicationID)
		}
		return writeFailed(err, "failed to insert application "+app.ApplicationID)
	}
	return nil
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE application_id = $1;`
	app, err := scanApplication(r.db.QueryRow(ctx, query, applicationID))
	if err != nil {
		return nil, notFoundOr(err, "application "+applicationID)
	}
	return &app, nil
}

// FindApplicationByIDForUpdate must run inside a unit of work; the row lock lasts until it ends.
func (r *PgxApplicationRepository) FindApplicationByIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE application_id = $1 FOR UPDATE;`
	app, err := scanApplication(r.db.QueryRow(ctx, query, applicationID))
	if err != nil {
		return nil, notFoundOr(err, "application "+applicationID)
	}
	return &app, nil
}

func (r *PgxApplicationRepository) ListApplications(ctx context.Context, ownerID *string) ([]domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE ($1::uuid IS NULL OR user_id = $1::uuid)
		ORDER BY created_at, application_id;
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications", err)
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan application", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate applications", err)
	}
	return apps, nil
}

func (r *PgxApplicationRepository) CompareAndSetStatus(ctx context.Context, app domain.Application, from domain.ApplicationStatus) error {
	m := mapping.ToModelApplication(app)
	query := `
		UPDATE applications
		SET status = $2, interest_rate = $3, reviewed_by = $4, reviewed_at = $5
		WHERE application_id = $1 AND status = $6;
	`
	tag, err := r.db.Exec(ctx, query, m.ApplicationID, m.Status, m.InterestRate, m.ReviewedBy, m.ReviewedAt, string(from))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update application "+app.ApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s is no longer %s", apperrors.ErrInvalidTransition, app.ApplicationID, from)
	}
	return nil
}
