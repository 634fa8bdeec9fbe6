package pgsql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/SscSPs/loan_ledger_app/internal/apperrors"
	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loan_ledger_app/internal/core/services"
	"github.com/SscSPs/loan_ledger_app/internal/dto"
	"github.com/SscSPs/loan_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/loan_ledger_app/internal/utils"
	"github.com/SscSPs/loan_ledger_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// Set LEDGER_TEST_PGSQL_URL to a disposable database to run these tests.
const testDatabaseEnv = "LEDGER_TEST_PGSQL_URL"

type PgsqlIntegrationSuite struct {
	suite.Suite
	ctx      context.Context
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
	banker   *domain.User
	provider *domain.User
	borrower *domain.User
}

func TestPgsqlIntegrationSuite(t *testing.T) {
	if os.Getenv(testDatabaseEnv) == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}
	suite.Run(t, new(PgsqlIntegrationSuite))
}

func (s *PgsqlIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	url := os.Getenv(testDatabaseEnv)
	utils.PasswordCost = bcrypt.MinCost

	_, err := database.RunMigrations(url, "file://../../../../migrations")
	s.Require().NoError(err)

	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.services = services.NewServiceContainer(pgsql.NewRepositoryProvider(s.pool))
}

func (s *PgsqlIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PgsqlIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE payments, ledger_entries, transactions, applications, users CASCADE`)
	s.Require().NoError(err)

	create := func(username string, role domain.Role) *domain.User {
		u, err := s.services.User.CreateUser(s.ctx, dto.CreateUserRequest{
			Username: username, Password: "secret123", Name: username, Role: role,
		})
		s.Require().NoError(err)
		return u
	}
	s.banker = create("banker", domain.RoleBankPersonnel)
	s.provider = create("provider_1", domain.RoleProvider)
	s.borrower = create("borrower_1", domain.RoleBorrower)
}

func (s *PgsqlIntegrationSuite) submitAndApprove(owner *domain.User, amount int64, rate string) (*domain.Application, error) {
	appType := domain.Loan
	if owner.Role == domain.RoleProvider {
		appType = domain.Deposit
	}
	app, err := s.services.Application.CreateApplication(s.ctx, owner.Principal(), appType, decimal.NewFromInt(amount), 12)
	s.Require().NoError(err)
	r := decimal.RequireFromString(rate)
	return s.services.Application.ReviewApplication(s.ctx, app.ApplicationID, s.banker.UserID, domain.DecisionApprove, &r)
}

func (s *PgsqlIntegrationSuite) balance() decimal.Decimal {
	b, err := s.services.Ledger.GetBalance(s.ctx)
	s.Require().NoError(err)
	return b
}

func (s *PgsqlIntegrationSuite) TestDepositThenLoans() {
	_, err := s.submitAndApprove(s.provider, 1000, "5")
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.NewFromInt(1000)))

	_, err = s.submitAndApprove(s.borrower, 1500, "10")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.True(s.balance().Equal(decimal.NewFromInt(1000)))

	app, err := s.submitAndApprove(s.borrower, 800, "10")
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.NewFromInt(200)))

	txn, payments, err := s.services.Application.GetApplicationSchedule(s.ctx, app.ApplicationID, s.borrower.Principal())
	s.Require().NoError(err)
	s.True(txn.TotalAmount.Equal(decimal.NewFromInt(880)))
	s.Len(payments, 12)
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	s.True(sum.Equal(txn.TotalAmount))
}

func (s *PgsqlIntegrationSuite) TestConcurrentLoansNeverOverdraw() {
	_, err := s.submitAndApprove(s.provider, 1000, "0")
	s.Require().NoError(err)

	apps := make([]*domain.Application, 10)
	for i := range apps {
		apps[i], err = s.services.Application.CreateApplication(s.ctx, s.borrower.Principal(), domain.Loan, decimal.NewFromInt(300), 3)
		s.Require().NoError(err)
	}

	rate := decimal.NewFromInt(5)
	var wg sync.WaitGroup
	var mu sync.Mutex
	approved := 0
	for _, app := range apps {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.services.Application.ReviewApplication(s.ctx, id, s.banker.UserID, domain.DecisionApprove, &rate)
			if err == nil {
				mu.Lock()
				approved++
				mu.Unlock()
			}
		}(app.ApplicationID)
	}
	wg.Wait()

	s.Equal(3, approved)
	s.True(s.balance().Equal(decimal.NewFromInt(100)))
}

func (s *PgsqlIntegrationSuite) TestPaymentResolvedOnce() {
	app, err := s.submitAndApprove(s.provider, 600, "0")
	s.Require().NoError(err)
	_, payments, err := s.services.Application.GetApplicationSchedule(s.ctx, app.ApplicationID, s.provider.Principal())
	s.Require().NoError(err)
	id := payments[0].PaymentID

	_, err = s.services.Payment.UpdatePaymentStatus(s.ctx, id, s.provider.UserID, false, "paid")
	s.Require().NoError(err)
	_, err = s.services.Payment.UpdatePaymentStatus(s.ctx, id, s.provider.UserID, false, "failed")
	s.ErrorIs(err, apperrors.ErrAlreadyResolved)

	_, err = s.services.Payment.UpdatePaymentStatus(s.ctx, payments[1].PaymentID, s.borrower.UserID, false, "paid")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *PgsqlIntegrationSuite) TestMalformedIDsAreNotFound() {
	_, err := s.services.Application.GetApplication(s.ctx, "xyz", s.borrower.Principal())
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, _, err = s.services.Application.GetApplicationSchedule(s.ctx, "xyz", s.borrower.Principal())
	s.ErrorIs(err, apperrors.ErrNotFound)

	rate := decimal.NewFromInt(5)
	_, err = s.services.Application.ReviewApplication(s.ctx, "xyz", s.banker.UserID, domain.DecisionApprove, &rate)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.services.Payment.UpdatePaymentStatus(s.ctx, "abc", s.provider.UserID, false, "paid")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.services.User.GetUserByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlIntegrationSuite) TestCompensatingEntryUnknownTransaction() {
	admin := domain.Principal{UserID: s.banker.UserID, Role: domain.RoleBankPersonnel, IsAdmin: true}
	for _, ref := range []string{"abc", "00000000-0000-0000-0000-000000000001"} {
		ref := ref
		_, err := s.services.Ledger.AppendCompensatingEntry(s.ctx, admin, domain.DepositReceived, decimal.NewFromInt(10), &ref)
		s.ErrorIs(err, apperrors.ErrValidation, ref)
	}
	s.True(s.balance().IsZero())
}
