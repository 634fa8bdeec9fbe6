package services_test

import (
	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

func (s *ApplicationServiceTestSuite) TestLedger_ListEntriesAdminOnly() {
	s.fund("250")

	_, err := s.svc.Ledger.ListEntries(s.ctx, s.banker)
	s.ErrorIs(err, apperrors.ErrForbidden)

	entries, err := s.svc.Ledger.ListEntries(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(domain.DepositReceived, entries[0].Kind)
}

func (s *ApplicationServiceTestSuite) TestLedger_CompensatingEntries() {
	s.fund("100")

	_, err := s.svc.Ledger.AppendCompensatingEntry(s.ctx, s.borrower, domain.LoanPayment, dec("10"), nil)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.Ledger.AppendCompensatingEntry(s.ctx, s.admin, domain.LoanPayment, dec("0"), nil)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.AppendCompensatingEntry(s.ctx, s.admin, domain.LoanPayment, dec("100.01"), nil)
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.True(dec("100").Equal(s.balance()))

	entry, err := s.svc.Ledger.AppendCompensatingEntry(s.ctx, s.admin, domain.DepositPayment, dec("40"), nil)
	s.Require().NoError(err)
	s.Equal(domain.DateOnly(fixedNow), entry.EntryDate)
	s.True(dec("140").Equal(s.balance()))

	_, err = s.svc.Ledger.AppendCompensatingEntry(s.ctx, s.admin, domain.LoanPayment, dec("140"), nil)
	s.Require().NoError(err)
	s.True(dec("0").Equal(s.balance()))
}
