package pgsql

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loan_ledger_app/internal/models"
	"github.com/SscSPs/loan_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxUserRepository stores users and their resolved roles.
type PgxUserRepository struct {
	db dbtx
}

func newPgxUserRepository(db dbtx) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, password_hash, name, role, is_admin, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	if err := row.Scan(&m.UserID, &m.Username, &m.PasswordHash, &m.Name, &m.Role, &m.IsAdmin, &m.CreatedAt); err != nil {
		return nil, err
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// SaveUser inserts the user or, when the username exists, updates it in place keeping its id.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			is_admin = EXCLUDED.is_admin;
	`
	_, err := r.db.Exec(ctx, query, m.UserID, m.Username, m.PasswordHash, m.Name, m.Role, m.IsAdmin, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save user "+user.Username, err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID))
	if err != nil {
		return nil, notFoundOr(err, "user "+userID)
	}
	return u, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1;`, username))
	if err != nil {
		return nil, notFoundOr(err, "user "+username)
	}
	return u, nil
}
