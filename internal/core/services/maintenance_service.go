package services

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
)

type maintenanceService struct {
	BaseService
	transactionRepo portsrepo.TransactionMaintainer
}

// NewMaintenanceService creates the service behind the scheduled housekeeping jobs.
func NewMaintenanceService(transactionRepo portsrepo.TransactionMaintainer, options ...ServiceOption) portssvc.TransactionMaintenanceSvc {
	s := &maintenanceService{transactionRepo: transactionRepo}
	applyOptions(&s.BaseService, options)
	return s
}

var _ portssvc.TransactionMaintenanceSvc = (*maintenanceService)(nil)

func (s *maintenanceService) DeactivateSettledTransactions(ctx context.Context) (int64, error) {
	n, err := s.transactionRepo.DeactivateSettledTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate settled transactions")
		return 0, fmt.Errorf("failed to deactivate settled transactions: %w", err)
	}
	if n > 0 {
		s.LogInfo(ctx, "Deactivated settled transactions", slog.Int64("count", n))
	}
	return n, nil
}
