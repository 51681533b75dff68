package core

import (
	"fmt"

	"wellcore/pkg/domain"
)

// ratioViolationSentinel is returned when a ratio has a zero denominator but
// a nonzero numerator. It is large enough to exceed any realistic configured
// limit, so the limit is always judged violated instead of the ratio being
// undefined.
const ratioViolationSentinel = 1e100

// ratioFunc computes a produced-fluid ratio from an active-phase rate vector.
type ratioFunc func(rates []float64, pu domain.PhaseUsage) float64

// mustSameDirection panics when two co-varying phase rates have opposite
// signs. That indicates a sign inconsistency in upstream solver data, not a
// legitimate simulation state.
func mustSameDirection(aName string, a float64, bName string, b float64) {
	if a*b < 0 {
		panic(fmt.Sprintf("core: %s rate %g and %s rate %g have opposite signs", aName, a, bName, b))
	}
}

// WaterCut computes water/(oil+water). A zero liquid rate yields 0.
func WaterCut(rates []float64, pu domain.PhaseUsage) float64 {
	oil := rates[pu.MustIndex(domain.PhaseOil)]
	water := rates[pu.MustIndex(domain.PhaseWater)]
	mustSameDirection("oil", oil, "water", water)

	liquid := oil + water
	if liquid != 0 {
		return water / liquid
	}
	return 0
}

// GasOilRatio computes gas/oil. Zero oil with nonzero gas yields the
// violation sentinel; zero over zero yields 0.
func GasOilRatio(rates []float64, pu domain.PhaseUsage) float64 {
	oil := rates[pu.MustIndex(domain.PhaseOil)]
	gas := rates[pu.MustIndex(domain.PhaseGas)]
	mustSameDirection("oil", oil, "gas", gas)

	if oil != 0 {
		return gas / oil
	}
	if gas != 0 {
		return ratioViolationSentinel
	}
	return 0
}

// WaterGasRatio computes water/gas. Zero gas with nonzero water yields the
// violation sentinel; zero over zero yields 0.
func WaterGasRatio(rates []float64, pu domain.PhaseUsage) float64 {
	water := rates[pu.MustIndex(domain.PhaseWater)]
	gas := rates[pu.MustIndex(domain.PhaseGas)]
	mustSameDirection("water", water, "gas", gas)

	if gas != 0 {
		return water / gas
	}
	if water != 0 {
		return ratioViolationSentinel
	}
	return 0
}
