package core

import (
	"context"
	"fmt"

	"wellcore/pkg/domain"
)

// WellLookup resolves a well definition from the schedule by name.
type WellLookup func(name string) (*domain.Well, bool)

// NewCompletionCascadeRule returns the ledger rule enforcing that a well
// whose open completions are all closed in the ledger is itself marked
// closed.
func NewCompletionCascadeRule(lookup WellLookup) domain.Rule {
	return completionCascadeRule{lookup: lookup}
}

type completionCascadeRule struct {
	lookup WellLookup
}

func (completionCascadeRule) Name() string { return "completion_cascade" }

func (r completionCascadeRule) Evaluate(_ context.Context, view domain.LedgerView) (domain.Result, error) {
	res := domain.Result{}
	for _, name := range view.CompletionWells() {
		well, ok := r.lookup(name)
		if !ok {
			continue
		}
		open := 0
		closed := 0
		for _, conn := range well.Connections {
			if !conn.Open {
				continue
			}
			open++
			if view.CompletionClosed(name, conn.Completion) {
				closed++
			}
		}
		if open > 0 && open == closed && !view.WellClosed(name) {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "completion_cascade",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("well %s has all %d open completions closed but is not marked closed", name, open),
				Well:     name,
			})
		}
	}
	return res, nil
}
