package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

func (r *repo) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	var found domain.Application
	err := r.with(ctx, func(st *state) error {
		app, ok := st.applications[applicationID]
		if !ok {
			return apperrors.NewNotFoundError("application " + applicationID)
		}
		found = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// FindApplicationByIDForUpdate needs no extra locking: the unit of work already holds the store.
func (r *repo) FindApplicationByIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	return r.FindApplicationByID(ctx, applicationID)
}

func (r *repo) ListApplications(ctx context.Context, ownerID *string) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.with(ctx, func(st *state) error {
		apps = make([]domain.Application, 0, len(st.appOrder))
		for _, id := range st.appOrder {
			app := st.applications[id]
			if ownerID != nil && app.UserID != *ownerID {
				continue
			}
			apps = append(apps, app)
		}
		return nil
	})
	return apps, err
}

func (r *repo) SaveApplication(ctx context.Context, app domain.Application) error {
	return r.with(ctx, func(st *state) error {
		if err := r.fault(OpSaveApplication); err != nil {
			return err
		}
		if _, exists := st.applications[app.ApplicationID]; exists {
			return fmt.Errorf("%w: application %s", apperrors.ErrDuplicate, app.ApplicationID)
		}
		st.applications[app.ApplicationID] = app
		st.appOrder = append(st.appOrder, app.ApplicationID)
		return nil
	})
}

func (r *repo) CompareAndSetStatus(ctx context.Context, app domain.Application, from domain.ApplicationStatus) error {
	return r.with(ctx, func(st *state) error {
		if err := r.fault(OpCompareAndSetStatus); err != nil {
			return err
		}
		stored, ok := st.applications[app.ApplicationID]
		if !ok {
			return apperrors.NewNotFoundError("application " + app.ApplicationID)
		}
		if stored.Status != from {
			return fmt.Errorf("%w: application %s is %s", apperrors.ErrInvalidTransition, app.ApplicationID, stored.Status)
		}
		stored.Status = app.Status
		stored.InterestRate = app.InterestRate
		stored.ReviewedBy = app.ReviewedBy
		stored.ReviewedAt = app.ReviewedAt
		st.applications[app.ApplicationID] = stored
		return nil
	})
}
