package domain

import "context"

// LedgerTx exposes the ledger operations that a persistence implementation
// must support within an atomic scope. Mutations are append-only; closures
// are permanent for the run.
type LedgerTx interface {
	CloseWell(name string, reason CloseReason, simTime float64)
	CloseCompletion(well string, completion int, simTime float64)
	WellClosed(name string) bool
	CompletionClosed(well string, completion int) bool
}

// LedgerStore is a minimal abstraction over durable shut-in ledger backends.
// RunInTransaction applies mutations atomically, evaluates the registered
// rules against the resulting state, and commits unless a blocking violation
// is found (in which case it returns RuleViolationError and the state is
// unchanged).
type LedgerStore interface {
	RunInTransaction(ctx context.Context, fn func(LedgerTx) error) (Result, error)
	View(ctx context.Context, fn func(LedgerView) error) error
	Snapshot() WellTestState
}
