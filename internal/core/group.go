package core

import "wellcore/pkg/domain"

// GuideRateGroupEvaluator is the in-tree group-hierarchy evaluator. It
// compares the group's aggregate surface (or voidage) totals from GroupState
// against the allocation targets in the schedule and, on violation, returns
// the factor that scales the aggregate back onto the target.
type GuideRateGroupEvaluator struct{}

var _ domain.GroupLimitEvaluator = GuideRateGroupEvaluator{}

// CheckInjectionLimit implements domain.GroupLimitEvaluator for injectors.
func (GuideRateGroupEvaluator) CheckInjectionLimit(req domain.GroupLimitRequest) (bool, float64, error) {
	target := req.Group.InjectionTargets[req.InjectionPhase]
	if target <= 0 {
		return false, 1, nil
	}
	pos, ok := req.Usage.Index(req.InjectionPhase)
	if !ok {
		return false, 1, nil
	}
	totals := req.GroupState.InjectionRates[req.Group.Name]
	if pos >= len(totals) {
		return false, 1, nil
	}
	current := totals[pos]
	if current <= target {
		return false, 1, nil
	}
	return true, target / current, nil
}

// CheckProductionLimit implements domain.GroupLimitEvaluator for producers.
// Every configured target is tested; the tightest scale factor wins.
func (GuideRateGroupEvaluator) CheckProductionLimit(req domain.GroupLimitRequest) (bool, float64, error) {
	totals := req.GroupState.ProductionRates[req.Group.Name]
	if len(totals) == 0 {
		return false, 1, nil
	}

	at := func(p domain.Phase) float64 {
		pos, ok := req.Usage.Index(p)
		if !ok || pos >= len(totals) {
			return 0
		}
		return totals[pos]
	}

	oil := at(domain.PhaseOil)
	water := at(domain.PhaseWater)
	gas := at(domain.PhaseGas)

	voidage := 0.0
	for p, total := range totals {
		if p < len(req.VoidageCoeff) {
			voidage += req.VoidageCoeff[p] * total
		}
	}

	violated := false
	scale := 1.0
	check := func(target, current float64) {
		if target <= 0 || current <= target {
			return
		}
		violated = true
		if f := target / current; f < scale {
			scale = f
		}
	}

	check(req.Group.OilTarget, oil)
	check(req.Group.WaterTarget, water)
	check(req.Group.GasTarget, gas)
	check(req.Group.LiquidTarget, oil+water)
	check(req.Group.ReservoirTarget, voidage)

	return violated, scale, nil
}
