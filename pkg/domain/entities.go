package domain

import "fmt"

// WellRole distinguishes injection wells from production wells.
type WellRole string

// Supported well roles.
const (
	// WellRoleProducer identifies a production well.
	WellRoleProducer WellRole = "producer"
	// WellRoleInjector identifies an injection well.
	WellRoleInjector WellRole = "injector"
)

// InjectorFluid identifies the fluid injected by an injection well.
type InjectorFluid string

// Supported injector fluids. Any other value is a fatal configuration error.
const (
	InjectorFluidWater InjectorFluid = "WATER"
	InjectorFluidOil   InjectorFluid = "OIL"
	InjectorFluidGas   InjectorFluid = "GAS"
)

// InjectorMode enumerates the control modes an injection well can operate
// under. The zero value means no control has been assigned yet.
type InjectorMode string

// Injection control modes in individual-constraint priority order; GRUP is
// assigned only through group-constraint escalation.
const (
	InjectorModeBHP  InjectorMode = "BHP"
	InjectorModeRate InjectorMode = "RATE"
	InjectorModeRESV InjectorMode = "RESV"
	InjectorModeTHP  InjectorMode = "THP"
	InjectorModeGRUP InjectorMode = "GRUP"
)

// ProducerMode enumerates the control modes a production well can operate
// under. The zero value means no control has been assigned yet.
type ProducerMode string

// Production control modes in individual-constraint priority order; GRUP is
// assigned only through group-constraint escalation.
const (
	ProducerModeBHP  ProducerMode = "BHP"
	ProducerModeORAT ProducerMode = "ORAT"
	ProducerModeWRAT ProducerMode = "WRAT"
	ProducerModeGRAT ProducerMode = "GRAT"
	ProducerModeLRAT ProducerMode = "LRAT"
	ProducerModeRESV ProducerMode = "RESV"
	ProducerModeTHP  ProducerMode = "THP"
	ProducerModeGRUP ProducerMode = "GRUP"
)

// SummaryState looks up time-dependent scalar values (e.g. THP limit tables)
// for the current report step. It is owned by the schedule collaborator.
type SummaryState interface {
	Get(key string) (float64, bool)
}

// MapSummaryState is a SummaryState backed by a plain map, sufficient for
// tests and for callers that resolve their tables up front.
type MapSummaryState map[string]float64

// Get implements SummaryState.
func (m MapSummaryState) Get(key string) (float64, bool) {
	v, ok := m[key]
	return v, ok
}

// Connection is a single perforation of a well.
type Connection struct {
	// Perf is the connection's slot in the perforation-level rate vector,
	// relative to the well's first perforation.
	Perf int `json:"perf"`
	// Completion is the completion number this connection belongs to. A
	// negative number denotes a standalone connection treated as its own
	// completion (the number is the negated connection ordinal).
	Completion int `json:"completion"`
	// Open reports whether the connection is open in the schedule.
	Open bool `json:"open"`
}

// Completion is a named subset of a well's connections treated as a unit for
// shut-in decisions.
type Completion struct {
	// Number is the completion identifier from the schedule.
	Number int
	// Connections lists ordinals into the well's connection slice.
	Connections []int
}

// InjectionControls carries the operational limits configured for an
// injection well at the current report step.
type InjectionControls struct {
	Active        []InjectorMode `json:"active"`
	Fluid         InjectorFluid  `json:"fluid"`
	BHPLimit      float64        `json:"bhp_limit"`
	THPLimit      float64        `json:"thp_limit"`
	THPKey        string         `json:"thp_key,omitempty"`
	SurfaceRate   float64        `json:"surface_rate"`
	ReservoirRate float64        `json:"reservoir_rate"`
}

// HasControl reports whether the given mode has a configured limit.
func (c InjectionControls) HasControl(m InjectorMode) bool {
	for _, a := range c.Active {
		if a == m {
			return true
		}
	}
	return false
}

// ProductionControls carries the operational limits configured for a
// production well at the current report step. Rate limits are positive
// magnitudes; the engine applies the sign convention when comparing.
type ProductionControls struct {
	Active        []ProducerMode `json:"active"`
	BHPLimit      float64        `json:"bhp_limit"`
	THPLimit      float64        `json:"thp_limit"`
	THPKey        string         `json:"thp_key,omitempty"`
	OilRate       float64        `json:"oil_rate"`
	WaterRate     float64        `json:"water_rate"`
	GasRate       float64        `json:"gas_rate"`
	LiquidRate    float64        `json:"liquid_rate"`
	ReservoirRate float64        `json:"reservoir_rate"`
}

// HasControl reports whether the given mode has a configured limit.
func (c ProductionControls) HasControl(m ProducerMode) bool {
	for _, a := range c.Active {
		if a == m {
			return true
		}
	}
	return false
}

// QuantityLimit selects whether economic rate limits are tested against
// instantaneous rates or against well potentials.
type QuantityLimit string

// Supported quantity-limit modes.
const (
	QuantityRate      QuantityLimit = "RATE"
	QuantityPotential QuantityLimit = "POTN"
)

// Workover is the remedial action applied when an economic ratio limit is
// violated.
type Workover string

// Workover policies. Values outside this set are recognised but unsupported.
const (
	WorkoverNone Workover = "NONE"
	WorkoverCon  Workover = "CON"
	WorkoverWell Workover = "WELL"
)

// EconProductionLimits holds the economic shut-in thresholds for a producer.
// A zero value means the corresponding limit is not configured.
type EconProductionLimits struct {
	MinOilRate            float64       `json:"min_oil_rate"`
	MinGasRate            float64       `json:"min_gas_rate"`
	MinLiquidRate         float64       `json:"min_liquid_rate"`
	MinReservoirFluidRate float64       `json:"min_reservoir_fluid_rate"`
	MaxWaterCut           float64       `json:"max_water_cut"`
	MaxGasOilRatio        float64       `json:"max_gas_oil_ratio"`
	MaxWaterGasRatio      float64       `json:"max_water_gas_ratio"`
	MaxGasLiquidRatio     float64       `json:"max_gas_liquid_ratio"`
	Quantity              QuantityLimit `json:"quantity"`
	Workover              Workover      `json:"workover"`
	EndRun                bool          `json:"end_run"`
	FollowOnWell          string        `json:"follow_on_well,omitempty"`
}

// OnMinOilRate reports whether a minimum oil rate limit is configured.
func (l EconProductionLimits) OnMinOilRate() bool { return l.MinOilRate > 0 }

// OnMinGasRate reports whether a minimum gas rate limit is configured.
func (l EconProductionLimits) OnMinGasRate() bool { return l.MinGasRate > 0 }

// OnMinLiquidRate reports whether a minimum liquid rate limit is configured.
func (l EconProductionLimits) OnMinLiquidRate() bool { return l.MinLiquidRate > 0 }

// OnMinReservoirFluidRate reports whether a minimum reservoir-fluid rate
// limit is configured. The limit is recognised but not supported.
func (l EconProductionLimits) OnMinReservoirFluidRate() bool { return l.MinReservoirFluidRate > 0 }

// OnMaxWaterCut reports whether a maximum water-cut limit is configured.
func (l EconProductionLimits) OnMaxWaterCut() bool { return l.MaxWaterCut > 0 }

// OnMaxGasOilRatio reports whether a maximum gas-oil ratio limit is configured.
func (l EconProductionLimits) OnMaxGasOilRatio() bool { return l.MaxGasOilRatio > 0 }

// OnMaxWaterGasRatio reports whether a maximum water-gas ratio limit is configured.
func (l EconProductionLimits) OnMaxWaterGasRatio() bool { return l.MaxWaterGasRatio > 0 }

// OnMaxGasLiquidRatio reports whether a maximum gas-liquid ratio limit is
// configured. The limit is recognised but not supported.
func (l EconProductionLimits) OnMaxGasLiquidRatio() bool { return l.MaxGasLiquidRatio > 0 }

// OnAnyRateLimit reports whether any minimum-rate limit is configured.
func (l EconProductionLimits) OnAnyRateLimit() bool {
	return l.OnMinOilRate() || l.OnMinGasRate() || l.OnMinLiquidRate() || l.OnMinReservoirFluidRate()
}

// OnAnyRatioLimit reports whether any ratio limit is configured.
func (l EconProductionLimits) OnAnyRatioLimit() bool {
	return l.OnMaxWaterCut() || l.OnMaxGasOilRatio() || l.OnMaxWaterGasRatio() || l.OnMaxGasLiquidRatio()
}

// OnAnyEffectiveLimit reports whether the well has at least one effective
// economic limit and therefore needs evaluation at all.
func (l EconProductionLimits) OnAnyEffectiveLimit() bool {
	return l.OnAnyRateLimit() || l.OnAnyRatioLimit()
}

// ValidFollowOnWell reports whether a follow-on well is configured. The
// feature is recognised but not supported.
func (l EconProductionLimits) ValidFollowOnWell() bool {
	return l.FollowOnWell != "" && l.FollowOnWell != "'"
}

// Well is the static identity of a well at the current report step. It is
// owned by the schedule collaborator; the engine holds a read-only reference.
type Well struct {
	Name  string   `json:"name"`
	Group string   `json:"group"`
	Role  WellRole `json:"role"`

	// Index is the well's slot in the per-well state vectors.
	Index int `json:"index"`
	// FirstPerf is the offset of the well's first connection in the
	// perforation-level rate vector.
	FirstPerf int `json:"first_perf"`
	// PvtRegion selects the PVT region used for voidage conversion.
	PvtRegion int `json:"pvt_region"`

	EfficiencyFactor float64 `json:"efficiency_factor"`
	AutomaticShutIn  bool    `json:"automatic_shut_in"`
	// PredictionMode is false when the well runs under a fixed-rate
	// (history-matching) schedule.
	PredictionMode bool `json:"prediction_mode"`

	Connections []Connection         `json:"connections"`
	Injection   InjectionControls    `json:"injection,omitempty"`
	Production  ProductionControls   `json:"production,omitempty"`
	Econ        EconProductionLimits `json:"econ,omitempty"`
}

// IsInjector reports whether the well injects.
func (w *Well) IsInjector() bool { return w.Role == WellRoleInjector }

// IsProducer reports whether the well produces.
func (w *Well) IsProducer() bool { return w.Role == WellRoleProducer }

// InjectionControlsAt resolves the injection controls for the current step,
// applying any summary-state overrides (time-dependent THP tables).
func (w *Well) InjectionControlsAt(sum SummaryState) InjectionControls {
	c := w.Injection
	if c.THPKey != "" && sum != nil {
		if v, ok := sum.Get(c.THPKey); ok {
			c.THPLimit = v
		}
	}
	return c
}

// ProductionControlsAt resolves the production controls for the current step,
// applying any summary-state overrides (time-dependent THP tables).
func (w *Well) ProductionControlsAt(sum SummaryState) ProductionControls {
	c := w.Production
	if c.THPKey != "" && sum != nil {
		if v, ok := sum.Get(c.THPKey); ok {
			c.THPLimit = v
		}
	}
	return c
}

// Completions groups the well's connections by completion number, preserving
// the order in which completion numbers first appear in the connection list.
func (w *Well) Completions() []Completion {
	var out []Completion
	index := make(map[int]int)
	for ord, conn := range w.Connections {
		if at, ok := index[conn.Completion]; ok {
			out[at].Connections = append(out[at].Connections, ord)
			continue
		}
		index[conn.Completion] = len(out)
		out = append(out, Completion{Number: conn.Completion, Connections: []int{ord}})
	}
	return out
}

// UnknownInjectorFluidError reports an injector whose fluid type is not one
// of WATER, OIL, or GAS. This is corrupted input: the run must abort.
type UnknownInjectorFluidError struct {
	Well  string
	Fluid InjectorFluid
}

func (e UnknownInjectorFluidError) Error() string {
	return fmt.Sprintf("expected WATER, OIL or GAS as injector fluid for well %s, got %q", e.Well, string(e.Fluid))
}

// Group is a node of the well-group hierarchy with its allocation limits at
// the current report step.
type Group struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`

	// InjectionTargets maps injection phase to the group surface-rate limit.
	InjectionTargets map[Phase]float64 `json:"injection_targets,omitempty"`
	// Production allocation limits; zero means not configured.
	OilTarget       float64 `json:"oil_target"`
	WaterTarget     float64 `json:"water_target"`
	GasTarget       float64 `json:"gas_target"`
	LiquidTarget    float64 `json:"liquid_target"`
	ReservoirTarget float64 `json:"reservoir_target"`
}

// ScheduleStep holds the group hierarchy for a single report step.
type ScheduleStep struct {
	Groups map[string]Group
}

// Schedule is the time-indexed group hierarchy owned by the schedule
// collaborator.
type Schedule struct {
	Steps []ScheduleStep
}

// Group resolves a group by name at the given report step.
func (s *Schedule) Group(name string, step int) (Group, bool) {
	if s == nil || step < 0 || step >= len(s.Steps) {
		return Group{}, false
	}
	g, ok := s.Steps[step].Groups[name]
	return g, ok
}
