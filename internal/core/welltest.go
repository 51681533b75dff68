package core

import (
	"context"

	"wellcore/pkg/domain"
)

// UpdateWellTestState is the top-level per-well, per-step entry point. It
// applies the physical-limit check, then the economic-limit check, inside one
// ledger transaction, and archives the resulting decision report when an
// archive store is configured.
//
// Only producers under prediction-mode operation are evaluated; injectors and
// wells under fixed-rate (history-matching) schedules are skipped.
func (s *Service) UpdateWellTestState(ctx context.Context, well *domain.Well, ws *domain.WellState,
	simTime float64) (domain.StepReport, error) {
	rpt := domain.StepReport{Well: well.Name, SimTime: simTime}

	if well.IsInjector() {
		return rpt, nil
	}
	if !well.PredictionMode {
		return rpt, nil
	}

	ctx, done := s.instrument(ctx, "update_well_test_state")

	res, err := s.ledger.RunInTransaction(ctx, func(tx domain.LedgerTx) error {
		if s.physical != nil {
			if err := s.physical.UpdateWellTestStatePhysical(ctx, well, ws, simTime, s.logMessages, tx, &rpt); err != nil {
				return err
			}
		}
		s.updateWellTestStateEconomic(well, ws, simTime, tx, &rpt)
		return nil
	})
	if err != nil {
		done(err)
		return rpt, err
	}
	for _, v := range res.Violations {
		s.logger.Warn(v.Message, "rule", v.Rule, "well", v.Well, "severity", string(v.Severity))
	}

	if s.archive != nil && !rpt.Empty() {
		s.archiveReport(ctx, &rpt)
	}
	done(nil)
	return rpt, nil
}

// UpdateWellTestStates evaluates every supplied well in order and returns the
// non-empty decision reports.
func (s *Service) UpdateWellTestStates(ctx context.Context, wells []*domain.Well, ws *domain.WellState,
	simTime float64) ([]domain.StepReport, error) {
	var out []domain.StepReport
	for _, well := range wells {
		rpt, err := s.UpdateWellTestState(ctx, well, ws, simTime)
		if err != nil {
			return out, err
		}
		if !rpt.Empty() {
			out = append(out, rpt)
		}
	}
	return out, nil
}
