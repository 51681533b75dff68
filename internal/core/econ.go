package core

import (
	"fmt"
	"math"

	"wellcore/pkg/domain"
)

// checkRateEconLimits tests the minimum-rate economic limits against the
// supplied per-phase values (instantaneous rates or potentials, depending on
// the quantity-limit mode). Returns true when any configured minimum is
// undercut.
func (s *Service) checkRateEconLimits(limits domain.EconProductionLimits,
	values []float64, pu domain.PhaseUsage) bool {
	if limits.OnMinOilRate() {
		oil := values[pu.MustIndex(domain.PhaseOil)]
		if math.Abs(oil) < limits.MinOilRate {
			return true
		}
	}

	if limits.OnMinGasRate() {
		gas := values[pu.MustIndex(domain.PhaseGas)]
		if math.Abs(gas) < limits.MinGasRate {
			return true
		}
	}

	if limits.OnMinLiquidRate() {
		oil := values[pu.MustIndex(domain.PhaseOil)]
		water := values[pu.MustIndex(domain.PhaseWater)]
		if math.Abs(oil+water) < limits.MinLiquidRate {
			return true
		}
	}

	if limits.OnMinReservoirFluidRate() {
		s.logger.Warn("minimum reservoir fluid production rate limit is not supported yet",
			"code", WarnMinReservoirFluidRate)
	}

	return false
}

func (s *Service) checkMaxWaterCutLimit(limits domain.EconProductionLimits, well *domain.Well,
	ws *domain.WellState, report *domain.RatioLimitCheckReport) {
	if s.checkMaxRatioLimitWell(well, ws, limits.MaxWaterCut, WaterCut) {
		report.RatioLimitViolated = true
		s.checkMaxRatioLimitCompletions(well, ws, limits.MaxWaterCut, WaterCut, report)
	}
}

func (s *Service) checkMaxGORLimit(limits domain.EconProductionLimits, well *domain.Well,
	ws *domain.WellState, report *domain.RatioLimitCheckReport) {
	if s.checkMaxRatioLimitWell(well, ws, limits.MaxGasOilRatio, GasOilRatio) {
		report.RatioLimitViolated = true
		s.checkMaxRatioLimitCompletions(well, ws, limits.MaxGasOilRatio, GasOilRatio, report)
	}
}

func (s *Service) checkMaxWGRLimit(limits domain.EconProductionLimits, well *domain.Well,
	ws *domain.WellState, report *domain.RatioLimitCheckReport) {
	if s.checkMaxRatioLimitWell(well, ws, limits.MaxWaterGasRatio, WaterGasRatio) {
		report.RatioLimitViolated = true
		s.checkMaxRatioLimitCompletions(well, ws, limits.MaxWaterGasRatio, WaterGasRatio, report)
	}
}

// checkRatioEconLimits evaluates every configured ratio limit. When several
// are violated at once, the violation extent (observed over limit) decides
// the single worst-offending completion across all of them.
func (s *Service) checkRatioEconLimits(limits domain.EconProductionLimits, well *domain.Well,
	ws *domain.WellState, report *domain.RatioLimitCheckReport) {
	if limits.OnMaxWaterCut() {
		s.checkMaxWaterCutLimit(limits, well, ws, report)
	}

	if limits.OnMaxGasOilRatio() {
		s.checkMaxGORLimit(limits, well, ws, report)
	}

	if limits.OnMaxWaterGasRatio() {
		s.checkMaxWGRLimit(limits, well, ws, report)
	}

	if limits.OnMaxGasLiquidRatio() {
		s.logger.Warn("the support for max gas-liquid ratio is not implemented yet",
			"code", WarnMaxGasLiquidRatio)
	}

	if report.RatioLimitViolated {
		if report.WorstOffendingCompletion == domain.InvalidCompletion || report.ViolationExtent <= 1 {
			panic(fmt.Sprintf("core: ratio limit violated for well %s without identified offender (extent %g)",
				well.Name, report.ViolationExtent))
		}
	}
}

func (s *Service) closureVerb(well *domain.Well) string {
	if well.AutomaticShutIn {
		return "shut"
	}
	return "stopped"
}

func (s *Service) decisionMessage(rpt *domain.StepReport, msg string) {
	if !s.logMessages {
		return
	}
	s.logger.Info(msg, "well", rpt.Well)
	rpt.Messages = append(rpt.Messages, msg)
}

// updateWellTestStateEconomic applies the economic limits to one producer and
// records closures into the ledger transaction. A violated minimum-rate limit
// closes the well immediately and short-circuits the ratio limits; ratio
// violations branch on the configured workover policy.
func (s *Service) updateWellTestStateEconomic(well *domain.Well, ws *domain.WellState,
	simTime float64, tx domain.LedgerTx, rpt *domain.StepReport) {
	if ws.Stopped(well.Index) || tx.WellClosed(well.Name) {
		return
	}

	limits := well.Econ
	if !limits.OnAnyEffectiveLimit() {
		return
	}

	rateLimitViolated := false
	if limits.OnAnyRateLimit() {
		values := ws.WellSurfaceRates(well.Index)
		if limits.Quantity == domain.QuantityPotential {
			values = ws.WellPotentials(well.Index)
		}
		rateLimitViolated = s.checkRateEconLimits(limits, values, ws.Usage)
	}

	if rateLimitViolated {
		if limits.EndRun {
			s.logger.Warn("ending run after well closed due to economic limits is not supported yet; the run will keep going after "+well.Name+" is closed",
				"code", WarnEndRun)
		}
		if limits.ValidFollowOnWell() {
			s.logger.Warn("opening a follow-on well after well closed is not supported yet",
				"code", WarnFollowOnWell)
		}

		tx.CloseWell(well.Name, domain.CloseReasonEconomic, simTime)
		rpt.WellClosed = true
		rpt.Reason = string(domain.CloseReasonEconomic)
		s.decisionMessage(rpt, fmt.Sprintf("well %s will be %s due to rate economic limit", well.Name, s.closureVerb(well)))
		// The well is closed; no need to check other limits.
		return
	}

	if !limits.OnAnyRatioLimit() {
		return
	}

	report := domain.NewRatioLimitCheckReport()
	s.checkRatioEconLimits(limits, well, ws, &report)

	if !report.RatioLimitViolated {
		return
	}

	switch limits.Workover {
	case domain.WorkoverCon:
		worst := report.WorstOffendingCompletion
		tx.CloseCompletion(well.Name, worst, simTime)
		rpt.ClosedCompletions = append(rpt.ClosedCompletions, worst)
		if worst < 0 {
			s.decisionMessage(rpt, fmt.Sprintf("connection %d for well %s will be closed due to economic limit", -worst, well.Name))
		} else {
			s.decisionMessage(rpt, fmt.Sprintf("completion %d for well %s will be closed due to economic limit", worst, well.Name))
		}

		allCompletionsClosed := true
		for _, conn := range well.Connections {
			if conn.Open && !tx.CompletionClosed(well.Name, conn.Completion) {
				allCompletionsClosed = false
			}
		}
		if allCompletionsClosed {
			tx.CloseWell(well.Name, domain.CloseReasonEconomic, simTime)
			rpt.WellClosed = true
			rpt.Reason = string(domain.CloseReasonEconomic)
			s.decisionMessage(rpt, fmt.Sprintf("well %s will be %s due to last completion closed", well.Name, s.closureVerb(well)))
		}

	case domain.WorkoverWell:
		tx.CloseWell(well.Name, domain.CloseReasonEconomic, simTime)
		rpt.WellClosed = true
		rpt.Reason = string(domain.CloseReasonEconomic)
		s.decisionMessage(rpt, fmt.Sprintf("well %s will be %s due to ratio economic limit", well.Name, s.closureVerb(well)))

	case domain.WorkoverNone:
		// No remedial action configured.

	default:
		s.logger.Warn("not supporting workover type "+string(limits.Workover),
			"code", WarnWorkoverType)
	}
}
