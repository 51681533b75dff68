package domain

// RateConverter converts between surface volumes and reservoir-voidage
// volumes. It is supplied by the PVT/fluid-property collaborator; how the
// conversion factors are computed is out of scope for the engine.
type RateConverter interface {
	// VoidageRates converts the surface-rate vector into reservoir-voidage
	// rates for the given FIP region and PVT region, writing into voidage
	// (same active-phase layout and length as surface).
	VoidageRates(fipRegion, pvtRegion int, surface, voidage []float64) error
	// VoidageCoefficients fills coeff with the surface-to-voidage conversion
	// factors per active phase for the given FIP region and PVT region.
	VoidageCoefficients(fipRegion, pvtRegion int, coeff []float64) error
}

// GroupLimitRequest carries the well-local data a group-hierarchy evaluator
// needs to judge whether the well's contribution breaks its parent group's
// allocation limit.
type GroupLimitRequest struct {
	WellName string
	Group    Group
	Step     int

	// InjectionPhase is the phase the well injects; meaningful only for
	// injection checks.
	InjectionPhase Phase

	Usage PhaseUsage
	// WellRates is the well's surface-rate slot (solver sign convention).
	WellRates []float64
	// Efficiency is the well's efficiency factor.
	Efficiency float64
	// VoidageCoeff holds surface-to-voidage conversion factors per active
	// phase, for limits expressed as reservoir rates.
	VoidageCoeff []float64

	WellState  *WellState
	GroupState *GroupState
}

// GroupLimitEvaluator is the external group-hierarchy evaluator. On
// violation it returns the factor by which the well's rates must be rescaled
// to honour the group's allocation (0 < scale < 1).
type GroupLimitEvaluator interface {
	CheckInjectionLimit(req GroupLimitRequest) (violated bool, scale float64, err error)
	CheckProductionLimit(req GroupLimitRequest) (violated bool, scale float64, err error)
}

// Collective is the cross-partition reduction used when a well's connections
// are split across parallel computational domains. Sum replaces vals with the
// element-wise sum over all participants. All participants must call Sum in
// lock-step; guarding against mismatched call counts is the caller's
// partitioning invariant, not the engine's.
type Collective interface {
	Sum(vals []float64) error
}

// LocalCollective is the single-process Collective: the local values already
// are the global values.
type LocalCollective struct{}

// Sum implements Collective as a no-op.
func (LocalCollective) Sum([]float64) error { return nil }
