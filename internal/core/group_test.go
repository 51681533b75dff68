package core

import (
	"errors"
	"testing"

	"wellcore/pkg/domain"
)

func TestGroupEscalationForcesGRUPAndRescales(t *testing.T) {
	eval := &stubGroupEvaluator{violated: true, scale: 0.7}
	s := newTestService(WithGroupEvaluator(eval))
	well := producerWell("P1")

	ws := domain.NewWellState(1, 3, domain.BlackOilUsage())
	setWellRates(ws, 0, -10, -20, -30)
	sched := singleGroupSchedule(domain.Group{Name: "PLAT"})

	changed, err := s.CheckGroupConstraints(well, ws, &domain.GroupState{}, sched, nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !changed || ws.ProductionMode(0) != domain.ProducerModeGRUP {
		t.Fatalf("expected escalation to GRUP, got %s", ws.ProductionMode(0))
	}

	want := []float64{-7, -14, -21}
	got := ws.WellSurfaceRates(0)
	for p := range want {
		if diff := got[p] - want[p]; diff > 1e-12 || diff < -1e-12 {
			t.Fatalf("expected rates scaled by 0.7, got %v", got)
		}
	}
	if eval.lastReq == nil || eval.lastReq.Group.Name != "PLAT" {
		t.Fatalf("expected a delegated request for group PLAT")
	}
}

func TestGroupCheckSkippedUnderGRUP(t *testing.T) {
	eval := &stubGroupEvaluator{violated: true, scale: 0.5}
	s := newTestService(WithGroupEvaluator(eval))
	well := producerWell("P1")

	ws := domain.NewWellState(1, 3, domain.BlackOilUsage())
	ws.SetProductionMode(0, domain.ProducerModeGRUP)
	sched := singleGroupSchedule(domain.Group{Name: "PLAT"})

	changed, err := s.CheckGroupConstraints(well, ws, &domain.GroupState{}, sched, nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if changed || eval.lastReq != nil {
		t.Fatalf("wells already under GRUP must not be rechecked")
	}
}

func TestGroupCheckInjector(t *testing.T) {
	eval := &stubGroupEvaluator{violated: true, scale: 0.5}
	s := newTestService(WithGroupEvaluator(eval))
	well := injectorWell(domain.InjectorFluidWater, domain.InjectorModeRate)
	well.Injection.SurfaceRate = 100

	ws := domain.NewWellState(1, 0, domain.BlackOilUsage())
	setWellRates(ws, 0, 50, 0, 0)
	sched := singleGroupSchedule(domain.Group{Name: "PLAT"})

	changed, err := s.CheckGroupConstraints(well, ws, &domain.GroupState{}, sched, nil)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !changed || ws.InjectionMode(0) != domain.InjectorModeGRUP {
		t.Fatalf("expected escalation to GRUP, got %s", ws.InjectionMode(0))
	}
	if got := ws.WellSurfaceRates(0)[ws.Usage.MustIndex(domain.PhaseWater)]; got != 25 {
		t.Fatalf("expected water rate halved to 25, got %g", got)
	}
	if eval.lastReq.InjectionPhase != domain.PhaseWater {
		t.Fatalf("expected water injection phase in request, got %s", eval.lastReq.InjectionPhase)
	}
}

func TestGroupCheckUnknownGroup(t *testing.T) {
	s := newTestService()
	well := producerWell("P1")
	well.Group = "MISSING"

	ws := domain.NewWellState(1, 3, domain.BlackOilUsage())
	sched := singleGroupSchedule(domain.Group{Name: "PLAT"})

	if _, err := s.CheckGroupConstraints(well, ws, &domain.GroupState{}, sched, nil); err == nil {
		t.Fatalf("expected an error for an unknown parent group")
	}
}

func TestGroupCheckEvaluatorError(t *testing.T) {
	eval := &stubGroupEvaluator{err: errors.New("evaluator down")}
	s := newTestService(WithGroupEvaluator(eval))
	well := producerWell("P1")

	ws := domain.NewWellState(1, 3, domain.BlackOilUsage())
	sched := singleGroupSchedule(domain.Group{Name: "PLAT"})

	if _, err := s.CheckGroupConstraints(well, ws, &domain.GroupState{}, sched, nil); err == nil {
		t.Fatalf("expected evaluator error to propagate")
	}
	if ws.ProductionMode(0) == domain.ProducerModeGRUP {
		t.Fatalf("mode must not change on evaluator error")
	}
}

func TestGuideRateEvaluatorInjection(t *testing.T) {
	pu := domain.BlackOilUsage()
	req := domain.GroupLimitRequest{
		Group: domain.Group{
			Name:             "PLAT",
			InjectionTargets: map[domain.Phase]float64{domain.PhaseWater: 100},
		},
		InjectionPhase: domain.PhaseWater,
		Usage:          pu,
		GroupState: &domain.GroupState{
			InjectionRates: map[string][]float64{"PLAT": {150, 0, 0}},
		},
	}

	violated, scale, err := GuideRateGroupEvaluator{}.CheckInjectionLimit(req)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !violated || scale < 0.66 || scale > 0.67 {
		t.Fatalf("expected violation with scale 2/3, got %v %g", violated, scale)
	}

	req.GroupState.InjectionRates["PLAT"][0] = 80
	violated, scale, err = GuideRateGroupEvaluator{}.CheckInjectionLimit(req)
	if err != nil || violated || scale != 1 {
		t.Fatalf("expected no violation under target, got %v %g %v", violated, scale, err)
	}
}

func TestGuideRateEvaluatorProductionTightestScaleWins(t *testing.T) {
	pu := domain.BlackOilUsage()
	req := domain.GroupLimitRequest{
		Group: domain.Group{
			Name:         "PLAT",
			OilTarget:    100, // current 200, scale 0.5
			LiquidTarget: 280, // current 350, scale 0.8
		},
		Usage: pu,
		GroupState: &domain.GroupState{
			ProductionRates: map[string][]float64{"PLAT": {150, 200, 0}},
		},
		VoidageCoeff: []float64{1, 1, 1},
	}

	violated, scale, err := GuideRateGroupEvaluator{}.CheckProductionLimit(req)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !violated || scale != 0.5 {
		t.Fatalf("expected the tightest scale 0.5, got %v %g", violated, scale)
	}
}

func TestGuideRateEvaluatorReservoirTarget(t *testing.T) {
	pu := domain.BlackOilUsage()
	req := domain.GroupLimitRequest{
		Group: domain.Group{Name: "PLAT", ReservoirTarget: 100},
		Usage: pu,
		GroupState: &domain.GroupState{
			ProductionRates: map[string][]float64{"PLAT": {50, 50, 100}},
		},
		VoidageCoeff: []float64{1, 1, 0.5}, // voidage 50+50+50 = 150
	}

	violated, scale, err := GuideRateGroupEvaluator{}.CheckProductionLimit(req)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !violated || scale < 0.66 || scale > 0.67 {
		t.Fatalf("expected violation with scale 2/3, got %v %g", violated, scale)
	}
}
