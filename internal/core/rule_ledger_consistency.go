package core

import (
	"context"
	"fmt"

	"wellcore/pkg/domain"
)

// NewLedgerConsistencyRule returns the ledger rule validating closure entries
// themselves: every entry must reference a well known to the schedule, carry
// a reason, and a non-negative timestamp.
func NewLedgerConsistencyRule(lookup WellLookup) domain.Rule {
	return ledgerConsistencyRule{lookup: lookup}
}

type ledgerConsistencyRule struct {
	lookup WellLookup
}

func (ledgerConsistencyRule) Name() string { return "ledger_consistency" }

func (r ledgerConsistencyRule) Evaluate(_ context.Context, view domain.LedgerView) (domain.Result, error) {
	res := domain.Result{}

	warnUnknown := func(name string) {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "ledger_consistency",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("ledger entry references well %s unknown to the schedule", name),
			Well:     name,
		})
	}

	for _, name := range view.ClosedWells() {
		if _, ok := r.lookup(name); !ok {
			warnUnknown(name)
		}
		closure, _ := view.Closure(name)
		if closure.Reason == "" {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "ledger_consistency",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("well %s closed without a reason", name),
				Well:     name,
			})
		}
		if closure.SimTime < 0 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "ledger_consistency",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("well %s closed at negative simulation time %g", name, closure.SimTime),
				Well:     name,
			})
		}
	}

	for _, name := range view.CompletionWells() {
		if _, ok := r.lookup(name); !ok {
			warnUnknown(name)
		}
	}

	return res, nil
}
