package services_test

import (
	"sync"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
)

// Payment tests reuse the application suite fixtures.

func (s *ApplicationServiceTestSuite) approvedLoanPayments(months int) []domain.Payment {
	s.fund("10000")
	loan := s.create(s.borrower, domain.Loan, "300", months)
	result, err := s.svc.Approval.Approve(s.ctx, loan.ApplicationID, s.banker.UserID, dec("0"))
	s.Require().NoError(err)
	return result.Payments
}

func (s *ApplicationServiceTestSuite) TestUpdatePaymentStatus_Owner() {
	payments := s.approvedLoanPayments(3)

	paid, err := s.svc.Payment.UpdatePaymentStatus(s.ctx, payments[0].PaymentID, s.borrower.UserID, false, "paid")
	s.Require().NoError(err)
	s.Equal(domain.PaymentPaid, paid.Status)
	s.Require().NotNil(paid.PaidDate)
	s.Equal(domain.DateOnly(fixedNow), *paid.PaidDate)

	failed, err := s.svc.Payment.UpdatePaymentStatus(s.ctx, payments[1].PaymentID, s.borrower.UserID, false, "failed")
	s.Require().NoError(err)
	s.Equal(domain.PaymentFailed, failed.Status)
	s.Nil(failed.PaidDate)

	_, err = s.svc.Payment.UpdatePaymentStatus(s.ctx, payments[0].PaymentID, s.borrower.UserID, false, "failed")
	s.ErrorIs(err, apperrors.ErrAlreadyResolved)
}

func (s *ApplicationServiceTestSuite) TestUpdatePaymentStatus_Authorization() {
	payments := s.approvedLoanPayments(2)

	_, err := s.svc.Payment.UpdatePaymentStatus(s.ctx, payments[0].PaymentID, s.borrower2.UserID, false, "paid")
	s.ErrorIs(err, apperrors.ErrForbidden)

	stored, err := s.repos.PaymentRepo.FindPaymentWithOwner(s.ctx, payments[0].PaymentID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentScheduled, stored.Status)

	_, err = s.svc.Payment.MarkPaid(s.ctx, payments[0].PaymentID, s.admin)
	s.Require().NoError(err)

	_, err = s.svc.Payment.UpdatePaymentStatus(s.ctx, "missing", s.admin.UserID, true, "paid")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ApplicationServiceTestSuite) TestUpdatePaymentStatus_InvalidStatus() {
	payments := s.approvedLoanPayments(1)

	for _, status := range []string{"scheduled", "refunded", ""} {
		_, err := s.svc.Payment.UpdatePaymentStatus(s.ctx, payments[0].PaymentID, s.borrower.UserID, false, status)
		s.ErrorIs(err, apperrors.ErrInvalidStatus, status)
	}
}

func (s *ApplicationServiceTestSuite) TestUpdatePaymentStatus_ConcurrentSingleWinner() {
	payments := s.approvedLoanPayments(1)
	id := payments[0].PaymentID

	var wg sync.WaitGroup
	errs := make([]error, 6)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := "paid"
			if i%2 == 1 {
				status = "failed"
			}
			_, errs[i] = s.svc.Payment.UpdatePaymentStatus(s.ctx, id, s.borrower.UserID, false, status)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		s.ErrorIs(err, apperrors.ErrAlreadyResolved)
	}
	s.Equal(1, winners)
}

func (s *ApplicationServiceTestSuite) TestListPayments_Visibility() {
	s.approvedLoanPayments(2)
	other := s.create(s.borrower2, domain.Loan, "50", 1)
	_, err := s.approve(other, "0")
	s.Require().NoError(err)

	own, err := s.svc.Payment.ListPayments(s.ctx, s.borrower.UserID, false)
	s.Require().NoError(err)
	s.Len(own, 2)

	none, err := s.svc.Payment.ListPayments(s.ctx, s.banker.UserID, false)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)

	all, err := s.svc.Payment.ListPayments(s.ctx, s.admin.UserID, true)
	s.Require().NoError(err)
	s.Len(all, 4) // includes the funding deposit's single installment
}

func (s *ApplicationServiceTestSuite) TestDeactivateSettledTransactions() {
	payments := s.approvedLoanPayments(2)

	n, err := s.svc.Maintenance.DeactivateSettledTransactions(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)

	for _, p := range payments {
		_, err := s.svc.Payment.MarkPaid(s.ctx, p.PaymentID, s.borrower)
		s.Require().NoError(err)
	}

	n, err = s.svc.Maintenance.DeactivateSettledTransactions(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}
