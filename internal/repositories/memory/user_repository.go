package memory

import (
	"context"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

func (r *repo) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var found domain.User
	err := r.with(ctx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return apperrors.NewNotFoundError("user " + userID)
		}
		found = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *repo) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var found *domain.User
	err := r.with(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				found = &u
				return nil
			}
		}
		return apperrors.NewNotFoundError("user " + username)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repo) SaveUser(ctx context.Context, user domain.User) error {
	return r.with(ctx, func(st *state) error {
		if err := r.fault(OpSaveUser); err != nil {
			return err
		}
		for id, u := range st.users {
			if u.Username == user.Username && id != user.UserID {
				// Upsert by username keeps the stored id.
				user.UserID = id
				break
			}
		}
		if existing, ok := st.users[user.UserID]; ok {
			user.CreatedAt = existing.CreatedAt
		}
		st.users[user.UserID] = user
		return nil
	})
}
