// Package memory provides an in-memory implementation of the shut-in ledger
// store used for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"wellcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.LedgerStore = (*Store)(nil)

// Store keeps the ledger in process memory. Transactions run against a deep
// copy of the state; the copy replaces the live state only when the
// transaction body and the registered rules both succeed.
type Store struct {
	mu     sync.RWMutex
	engine *domain.RulesEngine
	state  domain.WellTestState
}

// NewStore constructs an empty in-memory ledger store. The engine may be nil
// when no rule validation is wanted.
func NewStore(engine *domain.RulesEngine) *Store {
	return &Store{engine: engine, state: domain.NewWellTestState()}
}

// Restore replaces the live state, used by persistent backends on load.
func (s *Store) Restore(state domain.WellTestState) {
	s.mu.Lock()
	s.state = state.Clone()
	s.mu.Unlock()
}

type transaction struct {
	state *domain.WellTestState
}

func (t *transaction) CloseWell(name string, reason domain.CloseReason, simTime float64) {
	t.state.CloseWell(name, reason, simTime)
}

func (t *transaction) CloseCompletion(well string, completion int, simTime float64) {
	t.state.CloseCompletion(well, completion, simTime)
}

func (t *transaction) WellClosed(name string) bool {
	return t.state.WellClosed(name)
}

func (t *transaction) CompletionClosed(well string, completion int) bool {
	return t.state.CompletionClosed(well, completion)
}

// RunInTransaction implements domain.LedgerStore.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.LedgerTx) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.Clone()
	if err := fn(&transaction{state: &work}); err != nil {
		return domain.Result{}, err
	}

	res, err := s.engine.Evaluate(ctx, &work)
	if err != nil {
		return domain.Result{}, err
	}
	if res.HasBlocking() {
		return res, domain.RuleViolationError{Result: res}
	}

	s.state = work
	return res, nil
}

// View implements domain.LedgerStore.
func (s *Store) View(_ context.Context, fn func(domain.LedgerView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

// Snapshot implements domain.LedgerStore.
func (s *Store) Snapshot() domain.WellTestState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}
