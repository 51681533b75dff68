package domain

import (
	"strings"
	"testing"
)

func TestCompletionsGroupsByFirstAppearance(t *testing.T) {
	well := Well{
		Connections: []Connection{
			{Perf: 0, Completion: 2, Open: true},
			{Perf: 1, Completion: 1, Open: true},
			{Perf: 2, Completion: 2, Open: true},
			{Perf: 3, Completion: -4, Open: false},
		},
	}
	comps := well.Completions()
	if len(comps) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(comps))
	}
	if comps[0].Number != 2 || len(comps[0].Connections) != 2 {
		t.Fatalf("unexpected first completion: %+v", comps[0])
	}
	if comps[0].Connections[0] != 0 || comps[0].Connections[1] != 2 {
		t.Fatalf("unexpected ordinals for completion 2: %v", comps[0].Connections)
	}
	if comps[1].Number != 1 {
		t.Fatalf("expected completion 1 second, got %d", comps[1].Number)
	}
	if comps[2].Number != -4 {
		t.Fatalf("expected standalone completion -4 last, got %d", comps[2].Number)
	}
}

func TestHasControl(t *testing.T) {
	inj := InjectionControls{Active: []InjectorMode{InjectorModeBHP, InjectorModeRate}}
	if !inj.HasControl(InjectorModeBHP) || inj.HasControl(InjectorModeTHP) {
		t.Fatalf("unexpected injection control membership")
	}
	prod := ProductionControls{Active: []ProducerMode{ProducerModeORAT}}
	if !prod.HasControl(ProducerModeORAT) || prod.HasControl(ProducerModeBHP) {
		t.Fatalf("unexpected production control membership")
	}
}

func TestControlsAtAppliesSummaryOverride(t *testing.T) {
	well := Well{
		Injection:  InjectionControls{THPLimit: 10, THPKey: "WTHPI:INJ1"},
		Production: ProductionControls{THPLimit: 20, THPKey: "WTHPP:PROD1"},
	}
	sum := MapSummaryState{"WTHPI:INJ1": 15, "WTHPP:PROD1": 25}

	if got := well.InjectionControlsAt(sum).THPLimit; got != 15 {
		t.Fatalf("expected overridden injection THP 15, got %g", got)
	}
	if got := well.ProductionControlsAt(sum).THPLimit; got != 25 {
		t.Fatalf("expected overridden production THP 25, got %g", got)
	}
	// missing key and nil summary leave the static limit untouched
	if got := well.InjectionControlsAt(MapSummaryState{}).THPLimit; got != 10 {
		t.Fatalf("expected static injection THP 10, got %g", got)
	}
	if got := well.ProductionControlsAt(nil).THPLimit; got != 20 {
		t.Fatalf("expected static production THP 20, got %g", got)
	}
}

func TestEconLimitPredicates(t *testing.T) {
	var none EconProductionLimits
	if none.OnAnyRateLimit() || none.OnAnyRatioLimit() || none.OnAnyEffectiveLimit() {
		t.Fatalf("zero limits must be inactive")
	}

	rates := EconProductionLimits{MinOilRate: 1}
	if !rates.OnAnyRateLimit() || rates.OnAnyRatioLimit() || !rates.OnAnyEffectiveLimit() {
		t.Fatalf("min oil rate must count as a rate limit")
	}

	ratios := EconProductionLimits{MaxWaterCut: 0.9}
	if ratios.OnAnyRateLimit() || !ratios.OnAnyRatioLimit() || !ratios.OnAnyEffectiveLimit() {
		t.Fatalf("max water cut must count as a ratio limit")
	}

	if (EconProductionLimits{MinReservoirFluidRate: 1}).OnAnyRateLimit() == false {
		t.Fatalf("min reservoir fluid rate must count as a rate limit")
	}
	if (EconProductionLimits{MaxGasLiquidRatio: 1}).OnAnyRatioLimit() == false {
		t.Fatalf("max gas-liquid ratio must count as a ratio limit")
	}
}

func TestValidFollowOnWell(t *testing.T) {
	if (EconProductionLimits{}).ValidFollowOnWell() {
		t.Fatalf("empty follow-on well must be invalid")
	}
	if (EconProductionLimits{FollowOnWell: "'"}).ValidFollowOnWell() {
		t.Fatalf("placeholder follow-on well must be invalid")
	}
	if !(EconProductionLimits{FollowOnWell: "W2"}).ValidFollowOnWell() {
		t.Fatalf("named follow-on well must be valid")
	}
}

func TestUnknownInjectorFluidError(t *testing.T) {
	err := UnknownInjectorFluidError{Well: "INJ1", Fluid: "FOAM"}
	if !strings.Contains(err.Error(), "INJ1") || !strings.Contains(err.Error(), "FOAM") {
		t.Fatalf("unexpected error text: %s", err.Error())
	}
}

func TestScheduleGroupLookup(t *testing.T) {
	sched := &Schedule{Steps: []ScheduleStep{
		{Groups: map[string]Group{"PLAT": {Name: "PLAT", OilTarget: 100}}},
	}}
	g, ok := sched.Group("PLAT", 0)
	if !ok || g.OilTarget != 100 {
		t.Fatalf("expected PLAT at step 0, got %+v ok=%v", g, ok)
	}
	if _, ok := sched.Group("PLAT", 1); ok {
		t.Fatalf("expected out-of-range step to miss")
	}
	if _, ok := sched.Group("MISSING", 0); ok {
		t.Fatalf("expected unknown group to miss")
	}
	var nilSched *Schedule
	if _, ok := nilSched.Group("PLAT", 0); ok {
		t.Fatalf("expected nil schedule to miss")
	}
}

func TestWellRoleHelpers(t *testing.T) {
	inj := Well{Role: WellRoleInjector}
	prod := Well{Role: WellRoleProducer}
	if !inj.IsInjector() || inj.IsProducer() {
		t.Fatalf("unexpected injector role helpers")
	}
	if !prod.IsProducer() || prod.IsInjector() {
		t.Fatalf("unexpected producer role helpers")
	}
}
