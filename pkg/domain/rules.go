package domain

import "context"

// Severity grades a ledger rule violation.
type Severity string

// Rule severities.
const (
	// SeverityWarn reports a suspicious ledger state without blocking the
	// transaction.
	SeverityWarn Severity = "warn"
	// SeverityBlock rejects the transaction.
	SeverityBlock Severity = "block"
)

// Violation reports a failed ledger rule evaluation.
type Violation struct {
	Rule       string
	Severity   Severity
	Message    string
	Well       string
	Completion int
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "ledger transaction blocked by rules"
}

// LedgerView provides read-only access to the shut-in ledger for rule
// evaluation.
type LedgerView interface {
	WellClosed(name string) bool
	Closure(name string) (ClosedWell, bool)
	CompletionClosed(well string, completion int) bool
	ClosedWells() []string
	ClosedCompletions(well string) []int
	CompletionWells() []string
}

// Compile-time assertion that the ledger value type satisfies the rule view.
var _ LedgerView = (*WellTestState)(nil)

// Rule defines a consistency check executed within a ledger transaction
// boundary, after the transaction body has applied its mutations.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view LedgerView) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view LedgerView) (Result, error) {
	if e == nil {
		return Result{}, nil
	}
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
