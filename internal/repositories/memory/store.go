// Package memory is a process-local implementation of the repository ports.
// Units of work run one at a time on a private copy of the state that replaces
// the shared state only when the unit succeeds.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_ledger_app/internal/core/ports/repositories"
)

// Operation names accepted by FailOn.
const (
	OpSaveApplication     = "SaveApplication"
	OpCompareAndSetStatus = "CompareAndSetStatus"
	OpSaveTransaction     = "SaveTransaction"
	OpAppendEntry         = "AppendEntry"
	OpSavePayments        = "SavePayments"
	OpSetPaymentStatus    = "CompareAndSetPaymentStatus"
	OpSaveUser            = "SaveUser"
)

type state struct {
	users        map[string]domain.User
	applications map[string]domain.Application
	appOrder     []string
	transactions map[string]domain.Transaction
	txByApp      map[string]string
	ledger       []domain.LedgerEntry
	payments     map[string]domain.Payment
	paymentOrder []string
}

func newState() *state {
	return &state{
		users:        make(map[string]domain.User),
		applications: make(map[string]domain.Application),
		transactions: make(map[string]domain.Transaction),
		txByApp:      make(map[string]string),
		payments:     make(map[string]domain.Payment),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:        make(map[string]domain.User, len(s.users)),
		applications: make(map[string]domain.Application, len(s.applications)),
		appOrder:     append([]string(nil), s.appOrder...),
		transactions: make(map[string]domain.Transaction, len(s.transactions)),
		txByApp:      make(map[string]string, len(s.txByApp)),
		ledger:       append([]domain.LedgerEntry(nil), s.ledger...),
		payments:     make(map[string]domain.Payment, len(s.payments)),
		paymentOrder: append([]string(nil), s.paymentOrder...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.applications {
		c.applications[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.txByApp {
		c.txByApp[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

// Store holds all entities in memory.
type Store struct {
	mu     sync.Mutex // held for every read and for the whole of a unit of work
	st     *state
	faults map[string]error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState(), faults: make(map[string]error)}
}

// FailOn makes the named operation return err until ClearFaults is called.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// ClearFaults removes every injected failure.
func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]error)
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	r := &repo{store: s}
	return portsrepo.RepositoryProvider{
		UnitOfWork:      s,
		ApplicationRepo: r,
		LedgerRepo:      r,
		TransactionRepo: r,
		PaymentRepo:     r,
		UserRepo:        r,
	}
}

// WithinTx runs fn against a private copy of the state and publishes it only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.st.clone()
	r := &repo{store: s, tx: working}
	err := fn(ctx, portsrepo.TxRepositories{
		Applications: r,
		Ledger:       r,
		Transactions: r,
		Payments:     r,
	})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = working
	return nil
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// repo implements every repository port. Outside a unit of work (tx == nil) each call
// takes the store lock; inside one the lock is already held and tx is the working copy.
type repo struct {
	store *Store
	tx    *state
}

var (
	_ portsrepo.ApplicationRepositoryFacade = (*repo)(nil)
	_ portsrepo.ApplicationTxRepository     = (*repo)(nil)
	_ portsrepo.LedgerRepositoryFacade      = (*repo)(nil)
	_ portsrepo.LedgerTxRepository          = (*repo)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*repo)(nil)
	_ portsrepo.PaymentRepositoryFacade     = (*repo)(nil)
	_ portsrepo.UserRepositoryFacade        = (*repo)(nil)
)

func (r *repo) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.st)
}

// fault must be called with the store lock held.
func (r *repo) fault(op string) error {
	return r.store.faults[op]
}
