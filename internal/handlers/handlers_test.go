package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loan_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loan_ledger_app/internal/core/services"
	"github.com/SscSPs/loan_ledger_app/internal/dto"
	"github.com/SscSPs/loan_ledger_app/internal/handlers"
	"github.com/SscSPs/loan_ledger_app/internal/platform/config"
	"github.com/SscSPs/loan_ledger_app/internal/repositories/memory"
	"github.com/SscSPs/loan_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "@dmin123"

var registerValidatorsOnce sync.Once

type HandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	cfg      *config.Config
	services *portssvc.ServiceContainer
	users    map[string]*domain.User
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost
	registerValidatorsOnce.Do(func() {
		s.Require().NoError(utils.RegisterValidators())
	})
}

func (s *HandlerTestSuite) SetupTest() {
	s.cfg = &config.Config{
		StorageDriver:              config.StorageMemory,
		JWTSecret:                  "handler-test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "handler-test",
		RefreshTokenSecret:         "handler-test-refresh",
		RefreshTokenExpiryDuration: time.Hour,
		LoginRateLimit:             "1000-M",
	}
	store := memory.NewStore()
	s.services = services.NewServiceContainer(store.Repositories())

	s.users = map[string]*domain.User{}
	seed := []dto.CreateUserRequest{
		{Username: "admin", Name: "Admin", Role: domain.RoleBankPersonnel, IsAdmin: true},
		{Username: "banker", Name: "Banker", Role: domain.RoleBankPersonnel},
		{Username: "borrower_1", Name: "Borrower One", Role: domain.RoleBorrower},
		{Username: "borrower_2", Name: "Borrower Two", Role: domain.RoleBorrower},
		{Username: "provider_1", Name: "Provider One", Role: domain.RoleProvider},
	}
	for _, req := range seed {
		req.Password = testPassword
		u, err := s.services.User.CreateUser(context.Background(), req)
		s.Require().NoError(err)
		s.users[req.Username] = u
	}

	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, s.cfg, s.services))
}

func (s *HandlerTestSuite) token(username string) string {
	token, _, err := utils.GenerateJWT(s.users[username].UserID, s.cfg.JWTSecret, time.Hour, s.cfg.JWTIssuer)
	s.Require().NoError(err)
	return token
}

func (s *HandlerTestSuite) do(method, path, username string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(username))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *HandlerTestSuite) createApplication(username string, amount string, months int) dto.ApplicationResponse {
	w := s.do(http.MethodPost, "/api/v1/applications", username, gin.H{"amount": amount, "durationMonths": months})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.ApplicationResponse](s.T(), w)
}

func (s *HandlerTestSuite) review(id string, body gin.H) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/v1/applications/"+id+"/review", "banker", body)
}

func (s *HandlerTestSuite) balance() decimal.Decimal {
	w := s.do(http.MethodGet, "/api/v1/ledger/balance", "borrower_1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	return decode[dto.BalanceResponse](s.T(), w).Balance
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlerTestSuite) TestLoginAndRefresh() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "borrower_1", "password": testPassword})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	login := decode[dto.LoginResponse](s.T(), w)
	s.NotEmpty(login.AccessToken)
	s.NotEmpty(login.RefreshToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refreshToken": login.RefreshToken})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.NotEmpty(decode[dto.LoginResponse](s.T(), w).AccessToken)

	// An access token is not a refresh token
	w = s.do(http.MethodPost, "/api/v1/auth/refresh", "", gin.H{"refreshToken": login.AccessToken})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestLogin_BadCredentials() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "borrower_1", "password": "nope"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "ghost", "password": testPassword})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "borrower_1"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestLogin_RateLimited() {
	s.cfg.LoginRateLimit = "2-M"
	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, s.cfg, s.services))

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "borrower_1", "password": "nope"})
		s.Equal(http.StatusUnauthorized, w.Code)
	}
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "borrower_1", "password": testPassword})
	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *HandlerTestSuite) TestRegisterRoutes_InvalidRateLimit() {
	s.cfg.LoginRateLimit = "lots"
	s.Error(handlers.RegisterRoutes(gin.New(), s.cfg, s.services))
}

func (s *HandlerTestSuite) TestAuthRequired() {
	w := s.do(http.MethodGet, "/api/v1/applications", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerTestSuite) TestUnknownUserToken() {
	token, _, err := utils.GenerateJWT("no-such-user", s.cfg.JWTSecret, time.Hour, s.cfg.JWTIssuer)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerTestSuite) TestCreateApplication_TypeFromRole() {
	deposit := s.createApplication("provider_1", "1000", 12)
	s.Equal(domain.Deposit, deposit.ApplicationType)
	s.Equal(domain.StatusPending, deposit.Status)
	s.Nil(deposit.InterestRate)

	loan := s.createApplication("borrower_1", "500", 6)
	s.Equal(domain.Loan, loan.ApplicationType)
	s.Equal(s.users["borrower_1"].UserID, loan.UserID)
}

func (s *HandlerTestSuite) TestCreateApplication_Validation() {
	w := s.do(http.MethodPost, "/api/v1/applications", "borrower_1", gin.H{"amount": "0", "durationMonths": 12})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/applications", "borrower_1", gin.H{"amount": "100", "durationMonths": 0})
	s.Equal(http.StatusBadRequest, w.Code)

	for _, amount := range []string{"0.001", "0.004", "1000000000000.01", "2000000000000"} {
		w = s.do(http.MethodPost, "/api/v1/applications", "borrower_1", gin.H{"amount": amount, "durationMonths": 12})
		s.Equal(http.StatusBadRequest, w.Code, amount)
	}

	app := s.createApplication("borrower_1", "0.005", 1)
	s.True(app.Amount.Equal(decimal.RequireFromString("0.01")))

	// Bank personnel hold neither borrower nor provider role
	w = s.do(http.MethodPost, "/api/v1/applications", "banker", gin.H{"amount": "100", "durationMonths": 3})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestCreateApplication_OnBehalf() {
	target := s.users["provider_1"].UserID
	w := s.do(http.MethodPost, "/api/v1/applications", "admin", gin.H{"amount": "250", "durationMonths": 2, "userID": target})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	app := decode[dto.ApplicationResponse](s.T(), w)
	s.Equal(target, app.UserID)
	s.Equal(domain.Deposit, app.ApplicationType)

	w = s.do(http.MethodPost, "/api/v1/applications", "borrower_1", gin.H{"amount": "250", "durationMonths": 2, "userID": target})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/applications", "admin", gin.H{"amount": "250", "durationMonths": 2, "userID": "missing"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestDepositThenLoans() {
	deposit := s.createApplication("provider_1", "1000", 12)
	w := s.review(deposit.ApplicationID, gin.H{"decision": "approve", "interestRate": "5"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(s.balance().Equal(decimal.NewFromInt(1000)))

	big := s.createApplication("borrower_1", "1500", 12)
	w = s.review(big.ApplicationID, gin.H{"decision": "approve", "interestRate": "10"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.True(s.balance().Equal(decimal.NewFromInt(1000)))

	w = s.do(http.MethodGet, "/api/v1/applications/"+big.ApplicationID, "borrower_1", nil)
	s.Equal(domain.StatusPending, decode[dto.ApplicationResponse](s.T(), w).Status)

	small := s.createApplication("borrower_1", "800", 12)
	w = s.review(small.ApplicationID, gin.H{"decision": "approve", "interestRate": "10"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(s.balance().Equal(decimal.NewFromInt(200)))

	w = s.do(http.MethodGet, "/api/v1/applications/"+small.ApplicationID+"/transaction", "borrower_1", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	plan := decode[dto.ScheduleResponse](s.T(), w)
	s.Len(plan.Payments, 12)
	s.True(plan.Transaction.TotalAmount.Equal(decimal.NewFromInt(880)))
}

func (s *HandlerTestSuite) TestReviewApplication_Errors() {
	app := s.createApplication("provider_1", "100", 1)

	w := s.do(http.MethodPost, "/api/v1/applications/"+app.ApplicationID+"/review", "borrower_1", gin.H{"decision": "approve", "interestRate": "5"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.review(app.ApplicationID, gin.H{"decision": "approve"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.review(app.ApplicationID, gin.H{"decision": "approve", "interestRate": "101"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.review(app.ApplicationID, gin.H{"decision": "maybe"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.review("missing", gin.H{"decision": "reject"})
	s.Equal(http.StatusNotFound, w.Code)

	w = s.review(app.ApplicationID, gin.H{"decision": "reject"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(domain.StatusRejected, decode[dto.ApplicationResponse](s.T(), w).Status)

	w = s.review(app.ApplicationID, gin.H{"decision": "approve", "interestRate": "5"})
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/v1/applications/"+app.ApplicationID+"/transaction", "provider_1", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestApplicationVisibility() {
	mine := s.createApplication("borrower_1", "100", 1)
	s.createApplication("borrower_2", "200", 2)

	w := s.do(http.MethodGet, "/api/v1/applications", "borrower_1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	list := decode[[]dto.ApplicationResponse](s.T(), w)
	s.Require().Len(list, 1)
	s.Equal(mine.ApplicationID, list[0].ApplicationID)

	w = s.do(http.MethodGet, "/api/v1/applications", "admin", nil)
	s.Len(decode[[]dto.ApplicationResponse](s.T(), w), 2)

	w = s.do(http.MethodGet, "/api/v1/applications/"+mine.ApplicationID, "borrower_2", nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/applications", "provider_1", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())
}

func (s *HandlerTestSuite) approvedLoanPayments() []dto.PaymentResponse {
	deposit := s.createApplication("provider_1", "10000", 12)
	s.Require().Equal(http.StatusOK, s.review(deposit.ApplicationID, gin.H{"decision": "approve", "interestRate": "1"}).Code)

	loan := s.createApplication("borrower_1", "1200", 3)
	s.Require().Equal(http.StatusOK, s.review(loan.ApplicationID, gin.H{"decision": "approve", "interestRate": "10"}).Code)

	w := s.do(http.MethodGet, "/api/v1/applications/"+loan.ApplicationID+"/transaction", "borrower_1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	return decode[dto.ScheduleResponse](s.T(), w).Payments
}

func (s *HandlerTestSuite) TestPayments() {
	payments := s.approvedLoanPayments()
	s.Require().Len(payments, 3)
	id := payments[0].PaymentID

	w := s.do(http.MethodGet, "/api/v1/payments", "borrower_1", nil)
	s.Len(decode[[]dto.PaymentResponse](s.T(), w), 3)

	w = s.do(http.MethodGet, "/api/v1/payments", "borrower_2", nil)
	s.Empty(decode[[]dto.PaymentResponse](s.T(), w))

	w = s.do(http.MethodPatch, "/api/v1/payments/"+id, "borrower_2", gin.H{"status": "paid"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, "/api/v1/payments/"+id, "borrower_1", gin.H{"status": "refunded"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/api/v1/payments/"+id, "borrower_1", gin.H{"status": "paid"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	paid := decode[dto.PaymentResponse](s.T(), w)
	s.Equal(domain.PaymentPaid, paid.Status)
	s.NotNil(paid.PaidDate)

	w = s.do(http.MethodPatch, "/api/v1/payments/"+id, "admin", gin.H{"status": "failed"})
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodPatch, "/api/v1/payments/"+payments[1].PaymentID, "admin", gin.H{"status": "failed"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(domain.PaymentFailed, decode[dto.PaymentResponse](s.T(), w).Status)

	w = s.do(http.MethodPatch, "/api/v1/payments/missing", "admin", gin.H{"status": "paid"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestLedgerEntries() {
	w := s.do(http.MethodGet, "/api/v1/ledger/entries", "borrower_1", nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/ledger/entries", "admin", gin.H{"kind": "loan_issued", "amount": "10"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/v1/ledger/entries", "admin", gin.H{"kind": "bonus", "amount": "10"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/ledger/entries", "banker", gin.H{"kind": "deposit_received", "amount": "10"})
	s.Equal(http.StatusForbidden, w.Code)

	for _, amount := range []string{"0.004", "99999999999999"} {
		w = s.do(http.MethodPost, "/api/v1/ledger/entries", "admin", gin.H{"kind": "deposit_received", "amount": amount})
		s.Equal(http.StatusBadRequest, w.Code, amount)
	}
	s.True(s.balance().IsZero())

	w = s.do(http.MethodPost, "/api/v1/ledger/entries", "admin", gin.H{"kind": "deposit_received", "amount": "75.50"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.True(s.balance().Equal(decimal.RequireFromString("75.50")))

	w = s.do(http.MethodGet, "/api/v1/ledger/entries", "admin", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	entries := decode[[]dto.LedgerEntryResponse](s.T(), w)
	s.Require().Len(entries, 1)
	s.Equal(domain.DepositReceived, entries[0].Kind)
}
