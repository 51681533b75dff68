package domain

import "sort"

// CloseReason records why a well was closed.
type CloseReason string

// Close reasons recorded in the ledger.
const (
	// CloseReasonPhysical marks a closure due to physical operating limits.
	CloseReasonPhysical CloseReason = "PHYSICAL"
	// CloseReasonEconomic marks a closure due to economic limits.
	CloseReasonEconomic CloseReason = "ECONOMIC"
)

// ClosedWell is a ledger entry for a shut-in well.
type ClosedWell struct {
	Reason  CloseReason `json:"reason"`
	SimTime float64     `json:"sim_time"`
}

// ClosedCompletion is a ledger entry for a shut-in completion.
type ClosedCompletion struct {
	SimTime float64 `json:"sim_time"`
}

// WellTestState is the shut-in ledger: which wells and which completions have
// been closed, why, and when. Entries are append/mutate only; a closure is
// permanent for the remainder of the run unless an external re-opening
// mechanism (out of scope) reverses it.
type WellTestState struct {
	Wells       map[string]ClosedWell               `json:"wells"`
	Completions map[string]map[int]ClosedCompletion `json:"completions"`
}

// NewWellTestState returns an empty ledger.
func NewWellTestState() WellTestState {
	return WellTestState{
		Wells:       make(map[string]ClosedWell),
		Completions: make(map[string]map[int]ClosedCompletion),
	}
}

// CloseWell records a well closure. The first closure wins; repeated calls
// for an already-closed well are no-ops so the original reason and timestamp
// survive.
func (s *WellTestState) CloseWell(name string, reason CloseReason, simTime float64) {
	if s.Wells == nil {
		s.Wells = make(map[string]ClosedWell)
	}
	if _, ok := s.Wells[name]; ok {
		return
	}
	s.Wells[name] = ClosedWell{Reason: reason, SimTime: simTime}
}

// CloseCompletion records a completion closure for the well. Repeated calls
// for an already-closed completion are no-ops.
func (s *WellTestState) CloseCompletion(well string, completion int, simTime float64) {
	if s.Completions == nil {
		s.Completions = make(map[string]map[int]ClosedCompletion)
	}
	comps := s.Completions[well]
	if comps == nil {
		comps = make(map[int]ClosedCompletion)
		s.Completions[well] = comps
	}
	if _, ok := comps[completion]; ok {
		return
	}
	comps[completion] = ClosedCompletion{SimTime: simTime}
}

// WellClosed reports whether the well has a closure entry.
func (s WellTestState) WellClosed(name string) bool {
	_, ok := s.Wells[name]
	return ok
}

// Closure returns the well's closure entry, if any.
func (s WellTestState) Closure(name string) (ClosedWell, bool) {
	c, ok := s.Wells[name]
	return c, ok
}

// CompletionClosed reports whether the completion has a closure entry.
func (s WellTestState) CompletionClosed(well string, completion int) bool {
	_, ok := s.Completions[well][completion]
	return ok
}

// ClosedWells lists closed well names in lexical order.
func (s WellTestState) ClosedWells() []string {
	out := make([]string, 0, len(s.Wells))
	for name := range s.Wells {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ClosedCompletions lists the well's closed completion numbers in ascending
// order.
func (s WellTestState) ClosedCompletions(well string) []int {
	comps := s.Completions[well]
	out := make([]int, 0, len(comps))
	for n := range comps {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// CompletionWells lists, in lexical order, the wells that have at least one
// closed completion.
func (s WellTestState) CompletionWells() []string {
	out := make([]string, 0, len(s.Completions))
	for name := range s.Completions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the ledger.
func (s WellTestState) Clone() WellTestState {
	out := NewWellTestState()
	for name, w := range s.Wells {
		out.Wells[name] = w
	}
	for well, comps := range s.Completions {
		cpy := make(map[int]ClosedCompletion, len(comps))
		for n, c := range comps {
			cpy[n] = c
		}
		out.Completions[well] = cpy
	}
	return out
}
