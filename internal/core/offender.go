package core

import (
	"fmt"

	"wellcore/pkg/domain"
)

// checkMaxRatioLimitWell reports whether the well-level ratio exceeds the
// limit.
func (s *Service) checkMaxRatioLimitWell(well *domain.Well, ws *domain.WellState,
	limit float64, ratio ratioFunc) bool {
	return ratio(ws.WellSurfaceRates(well.Index), ws.Usage) > limit
}

// checkMaxRatioLimitCompletions scans the well's completions for the one most
// in violation of the ratio limit. Per completion it sums the perforation
// rates of the constituent connections, reduces the sums across parallel
// partitions, and applies the same ratio function. The worst offender is
// written into the report only when its violation extent exceeds the extent
// already recorded there, so that the single most-violated completion across
// all simultaneously violated ratio kinds wins.
//
// The caller guarantees the well-level ratio exceeds the limit; a completion
// scan that does not reproduce a violation is a logic error and aborts.
func (s *Service) checkMaxRatioLimitCompletions(well *domain.Well, ws *domain.WellState,
	limit float64, ratio ratioFunc, report *domain.RatioLimitCheckReport) {
	np := ws.Usage.NumActive()

	worst := domain.InvalidCompletion
	maxRatio := 0.0
	for _, completion := range well.Completions() {
		rates := make([]float64, np)
		for _, ord := range completion.Connections {
			conn := well.Connections[ord]
			connRates := ws.ConnectionRates(well.FirstPerf + conn.Perf)
			for p := 0; p < np; p++ {
				rates[p] += connRates[p]
			}
		}
		// Connections of a completion may live on different partitions.
		if err := s.collective.Sum(rates); err != nil {
			panic(fmt.Sprintf("core: collective sum over completion %d of well %s: %v", completion.Number, well.Name, err))
		}

		if r := ratio(rates, ws.Usage); r > maxRatio {
			maxRatio = r
			worst = completion.Number
		}
	}

	if worst == domain.InvalidCompletion || maxRatio <= limit {
		panic(fmt.Sprintf("core: well %s violates ratio limit %g but no completion does (max %g)", well.Name, limit, maxRatio))
	}

	extent := maxRatio / limit
	if extent > report.ViolationExtent {
		report.WorstOffendingCompletion = worst
		report.ViolationExtent = extent
	}
}
