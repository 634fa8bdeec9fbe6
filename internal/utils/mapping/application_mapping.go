package mapping

import (
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/SscSPs/loan_ledger_app/internal/models"
)

// ToModelApplication converts a domain Application to a model Application
func ToModelApplication(d domain.Application) models.Application {
	return models.Application{
		ApplicationID:   d.ApplicationID,
		UserID:          d.UserID,
		ApplicationType: string(d.Type),
		Amount:          d.Amount,
		DurationMonths:  d.DurationMonths,
		InterestRate:    d.InterestRate,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
		ReviewedBy:      d.ReviewedBy,
		ReviewedAt:      d.ReviewedAt,
	}
}

// ToDomainApplication converts a model Application to a domain Application
func ToDomainApplication(m models.Application) domain.Application {
	return domain.Application{
		ApplicationID:  m.ApplicationID,
		UserID:         m.UserID,
		Type:           domain.ApplicationType(m.ApplicationType),
		Amount:         m.Amount,
		DurationMonths: m.DurationMonths,
		InterestRate:   m.InterestRate,
		Status:         domain.ApplicationStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		ReviewedBy:     m.ReviewedBy,
		ReviewedAt:     m.ReviewedAt,
	}
}

// ToDomainApplicationSlice converts a slice of model Applications
func ToDomainApplicationSlice(ms []models.Application) []domain.Application {
	ds := make([]domain.Application, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApplication(m)
	}
	return ds
}
