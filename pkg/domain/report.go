package domain

import "math"

// InvalidCompletion is the sentinel for "no completion identified". Valid
// completion numbers are small (possibly negative) schedule identifiers and
// never collide with it.
const InvalidCompletion = math.MaxInt32

// RatioLimitCheckReport is the transient result of one ratio-limit
// evaluation pass over a well. When RatioLimitViolated is set, the worst
// offending completion across all violated ratio kinds is identified and the
// violation extent (observed value over limit) is strictly greater than one.
type RatioLimitCheckReport struct {
	RatioLimitViolated       bool
	WorstOffendingCompletion int
	ViolationExtent          float64
}

// NewRatioLimitCheckReport returns an empty report with the sentinel
// completion.
func NewRatioLimitCheckReport() RatioLimitCheckReport {
	return RatioLimitCheckReport{WorstOffendingCompletion: InvalidCompletion}
}

// StepReport summarises the shut-in decisions taken for one well during one
// evaluation step. Reports are archived as JSON blobs when an archive store
// is configured.
type StepReport struct {
	ID                string   `json:"id"`
	Well              string   `json:"well"`
	SimTime           float64  `json:"sim_time"`
	WellClosed        bool     `json:"well_closed"`
	Reason            string   `json:"reason,omitempty"`
	ClosedCompletions []int    `json:"closed_completions,omitempty"`
	Messages          []string `json:"messages,omitempty"`
}

// Empty reports whether the step produced no decision worth archiving.
func (r StepReport) Empty() bool {
	return !r.WellClosed && len(r.ClosedCompletions) == 0 && len(r.Messages) == 0
}
