package core

import (
	"context"
	"fmt"

	"wellcore/pkg/domain"
)

// CheckConstraints evaluates the well's operational limits and switches its
// active control mode when one is breached. Individual constraints are
// evaluated first in fixed priority order; only when none fires is the
// immediate parent group's allocation limit checked. Returns true iff the
// control mode changed.
func (s *Service) CheckConstraints(ctx context.Context, well *domain.Well, ws *domain.WellState,
	gs *domain.GroupState, sched *domain.Schedule, sum domain.SummaryState) (bool, error) {
	ctx, done := s.instrument(ctx, "check_constraints")
	_ = ctx

	changed, err := s.CheckIndividualConstraints(well, ws, sum)
	if err != nil || changed {
		done(err)
		return changed, err
	}
	changed, err = s.CheckGroupConstraints(well, ws, gs, sched, sum)
	done(err)
	return changed, err
}

// CheckIndividualConstraints tests the well's own limits in priority order
// (injector: BHP, RATE, RESV, THP; producer: BHP, ORAT, WRAT, GRAT, LRAT,
// RESV, THP), switching to the first violated control that is not already
// active. Production rates are stored negated, so producer comparisons negate
// the observed value before comparing to the positive limit.
func (s *Service) CheckIndividualConstraints(well *domain.Well, ws *domain.WellState,
	sum domain.SummaryState) (bool, error) {
	if well.IsInjector() {
		return s.checkInjectorConstraints(well, ws, sum)
	}
	if well.IsProducer() {
		return s.checkProducerConstraints(well, ws, sum)
	}
	return false, nil
}

func injectionPhase(well *domain.Well, fluid domain.InjectorFluid) (domain.Phase, error) {
	switch fluid {
	case domain.InjectorFluidWater:
		return domain.PhaseWater, nil
	case domain.InjectorFluidOil:
		return domain.PhaseOil, nil
	case domain.InjectorFluidGas:
		return domain.PhaseGas, nil
	default:
		return 0, domain.UnknownInjectorFluidError{Well: well.Name, Fluid: fluid}
	}
}

func (s *Service) checkInjectorConstraints(well *domain.Well, ws *domain.WellState,
	sum domain.SummaryState) (bool, error) {
	controls := well.InjectionControlsAt(sum)
	current := ws.InjectionMode(well.Index)
	pu := ws.Usage

	if controls.HasControl(domain.InjectorModeBHP) && current != domain.InjectorModeBHP {
		if controls.BHPLimit < ws.BHP(well.Index) {
			ws.SetInjectionMode(well.Index, domain.InjectorModeBHP)
			return true, nil
		}
	}

	if controls.HasControl(domain.InjectorModeRate) && current != domain.InjectorModeRate {
		phase, err := injectionPhase(well, controls.Fluid)
		if err != nil {
			return false, err
		}
		currentRate := ws.WellSurfaceRates(well.Index)[pu.MustIndex(phase)]
		if controls.SurfaceRate < currentRate {
			ws.SetInjectionMode(well.Index, domain.InjectorModeRate)
			return true, nil
		}
	}

	if controls.HasControl(domain.InjectorModeRESV) && current != domain.InjectorModeRESV {
		currentRate := 0.0
		for _, r := range ws.WellReservoirRates(well.Index) {
			currentRate += r
		}
		if controls.ReservoirRate < currentRate {
			ws.SetInjectionMode(well.Index, domain.InjectorModeRESV)
			return true, nil
		}
	}

	if controls.HasControl(domain.InjectorModeTHP) && current != domain.InjectorModeTHP {
		if controls.THPLimit < ws.THP(well.Index) {
			ws.SetInjectionMode(well.Index, domain.InjectorModeTHP)
			return true, nil
		}
	}

	return false, nil
}

func (s *Service) checkProducerConstraints(well *domain.Well, ws *domain.WellState,
	sum domain.SummaryState) (bool, error) {
	controls := well.ProductionControlsAt(sum)
	current := ws.ProductionMode(well.Index)
	pu := ws.Usage
	rates := ws.WellSurfaceRates(well.Index)

	if controls.HasControl(domain.ProducerModeBHP) && current != domain.ProducerModeBHP {
		if controls.BHPLimit > ws.BHP(well.Index) {
			ws.SetProductionMode(well.Index, domain.ProducerModeBHP)
			return true, nil
		}
	}

	if controls.HasControl(domain.ProducerModeORAT) && current != domain.ProducerModeORAT {
		currentRate := -rates[pu.MustIndex(domain.PhaseOil)]
		if controls.OilRate < currentRate {
			ws.SetProductionMode(well.Index, domain.ProducerModeORAT)
			return true, nil
		}
	}

	if controls.HasControl(domain.ProducerModeWRAT) && current != domain.ProducerModeWRAT {
		currentRate := -rates[pu.MustIndex(domain.PhaseWater)]
		if controls.WaterRate < currentRate {
			ws.SetProductionMode(well.Index, domain.ProducerModeWRAT)
			return true, nil
		}
	}

	if controls.HasControl(domain.ProducerModeGRAT) && current != domain.ProducerModeGRAT {
		currentRate := -rates[pu.MustIndex(domain.PhaseGas)]
		if controls.GasRate < currentRate {
			ws.SetProductionMode(well.Index, domain.ProducerModeGRAT)
			return true, nil
		}
	}

	if controls.HasControl(domain.ProducerModeLRAT) && current != domain.ProducerModeLRAT {
		currentRate := -rates[pu.MustIndex(domain.PhaseOil)] - rates[pu.MustIndex(domain.PhaseWater)]
		if controls.LiquidRate < currentRate {
			ws.SetProductionMode(well.Index, domain.ProducerModeLRAT)
			return true, nil
		}
	}

	if controls.HasControl(domain.ProducerModeRESV) && current != domain.ProducerModeRESV {
		currentRate := 0.0
		for _, r := range ws.WellReservoirRates(well.Index) {
			currentRate -= r
		}

		if well.PredictionMode {
			if controls.ReservoirRate < currentRate {
				ws.SetProductionMode(well.Index, domain.ProducerModeRESV)
				return true, nil
			}
		} else {
			// Under a history-matching schedule the RESV limit is given as
			// target surface rates and must be converted to an equivalent
			// voidage rate before comparison.
			resvRate, err := s.historyResvRate(well, controls, pu)
			if err != nil {
				return false, err
			}
			if resvRate < currentRate {
				ws.SetProductionMode(well.Index, domain.ProducerModeRESV)
				return true, nil
			}
		}
	}

	if controls.HasControl(domain.ProducerModeTHP) && current != domain.ProducerModeTHP {
		if controls.THPLimit > ws.THP(well.Index) {
			ws.SetProductionMode(well.Index, domain.ProducerModeTHP)
			return true, nil
		}
	}

	return false, nil
}

// historyResvRate converts a producer's target surface rates into an
// aggregate reservoir-voidage rate.
func (s *Service) historyResvRate(well *domain.Well, controls domain.ProductionControls,
	pu domain.PhaseUsage) (float64, error) {
	const fipRegion = 0 // region selection beyond region 0 is a known limitation
	np := pu.NumActive()

	surface := make([]float64, np)
	if idx, ok := pu.Index(domain.PhaseWater); ok {
		surface[idx] = controls.WaterRate
	}
	if idx, ok := pu.Index(domain.PhaseOil); ok {
		surface[idx] = controls.OilRate
	}
	if idx, ok := pu.Index(domain.PhaseGas); ok {
		surface[idx] = controls.GasRate
	}

	voidage := make([]float64, np)
	if err := s.rateConv.VoidageRates(fipRegion, well.PvtRegion, surface, voidage); err != nil {
		return 0, fmt.Errorf("voidage conversion of RESV target for well %s: %w", well.Name, err)
	}

	total := 0.0
	for _, v := range voidage {
		total += v
	}
	return total, nil
}

// CheckGroupConstraints tests whether the well's contribution violates its
// immediate parent group's allocation limit. Only the first-level parent is
// checked; multi-level hierarchies are a known limitation. On violation the
// well is forced into GRUP mode and every phase rate in its WellState slot is
// rescaled by the returned factor.
func (s *Service) CheckGroupConstraints(well *domain.Well, ws *domain.WellState,
	gs *domain.GroupState, sched *domain.Schedule, sum domain.SummaryState) (bool, error) {
	if well.IsInjector() {
		if ws.InjectionMode(well.Index) == domain.InjectorModeGRUP {
			return false, nil
		}
		violated, scale, err := s.checkGroupConstraintsInj(well, ws, gs, sched, sum)
		if err != nil {
			return false, err
		}
		if violated {
			ws.SetInjectionMode(well.Index, domain.InjectorModeGRUP)
			ws.ScaleWellRates(well.Index, scale)
		}
		return violated, nil
	}

	if well.IsProducer() {
		if ws.ProductionMode(well.Index) == domain.ProducerModeGRUP {
			return false, nil
		}
		violated, scale, err := s.checkGroupConstraintsProd(well, ws, gs, sched)
		if err != nil {
			return false, err
		}
		if violated {
			ws.SetProductionMode(well.Index, domain.ProducerModeGRUP)
			ws.ScaleWellRates(well.Index, scale)
		}
		return violated, nil
	}

	return false, nil
}

func (s *Service) parentGroup(well *domain.Well, sched *domain.Schedule) (domain.Group, error) {
	group, ok := sched.Group(well.Group, s.currentStep)
	if !ok {
		return domain.Group{}, fmt.Errorf("unknown group %q for well %s at step %d", well.Group, well.Name, s.currentStep)
	}
	return group, nil
}

func (s *Service) voidageCoefficients(well *domain.Well, pu domain.PhaseUsage) ([]float64, error) {
	const fipRegion = 0 // FIP region 0 here; should use the well's region from the schedule
	coeff := make([]float64, pu.NumActive())
	for p := range coeff {
		coeff[p] = 1.0
	}
	if err := s.rateConv.VoidageCoefficients(fipRegion, well.PvtRegion, coeff); err != nil {
		return nil, fmt.Errorf("voidage coefficients for well %s: %w", well.Name, err)
	}
	return coeff, nil
}

func (s *Service) checkGroupConstraintsInj(well *domain.Well, ws *domain.WellState,
	gs *domain.GroupState, sched *domain.Schedule, sum domain.SummaryState) (bool, float64, error) {
	controls := well.InjectionControlsAt(sum)
	phase, err := injectionPhase(well, controls.Fluid)
	if err != nil {
		return false, 0, err
	}
	group, err := s.parentGroup(well, sched)
	if err != nil {
		return false, 0, err
	}
	coeff, err := s.voidageCoefficients(well, ws.Usage)
	if err != nil {
		return false, 0, err
	}
	return s.delegateGroupCheck(true, well, ws, gs, group, phase, coeff)
}

func (s *Service) checkGroupConstraintsProd(well *domain.Well, ws *domain.WellState,
	gs *domain.GroupState, sched *domain.Schedule) (bool, float64, error) {
	group, err := s.parentGroup(well, sched)
	if err != nil {
		return false, 0, err
	}
	coeff, err := s.voidageCoefficients(well, ws.Usage)
	if err != nil {
		return false, 0, err
	}
	return s.delegateGroupCheck(false, well, ws, gs, group, 0, coeff)
}

// delegateGroupCheck translates the well-local data into the shape the group
// evaluator expects. It holds no state of its own.
func (s *Service) delegateGroupCheck(injection bool, well *domain.Well, ws *domain.WellState,
	gs *domain.GroupState, group domain.Group, phase domain.Phase, coeff []float64) (bool, float64, error) {
	req := domain.GroupLimitRequest{
		WellName:       well.Name,
		Group:          group,
		Step:           s.currentStep,
		InjectionPhase: phase,
		Usage:          ws.Usage,
		WellRates:      ws.WellSurfaceRates(well.Index),
		Efficiency:     well.EfficiencyFactor,
		VoidageCoeff:   coeff,
		WellState:      ws,
		GroupState:     gs,
	}
	if injection {
		return s.groups.CheckInjectionLimit(req)
	}
	return s.groups.CheckProductionLimit(req)
}
