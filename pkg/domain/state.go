package domain

import "fmt"

// WellState is the time-step-scoped snapshot of simulation results for all
// wells. It is rebuilt by the flow solver once per time step; the engine
// reads it and writes back only the control-mode fields and the documented
// rescale-on-group-violation path.
//
// Rate vectors are laid out as NumWells * NumActive contiguous slots; each
// well owns the disjoint slice starting at Index*NumActive. Production rates
// are stored negated (injection positive, production negative).
type WellState struct {
	Usage PhaseUsage

	// SurfaceRates holds per-well surface phase rates.
	SurfaceRates []float64
	// ReservoirRates holds per-well reservoir-voidage phase rates.
	ReservoirRates []float64
	// Potentials holds per-well phase potentials, used instead of rates when
	// the quantity-limit mode is POTN.
	Potentials []float64
	// PerfRates holds perforation-level phase rates for all connections of
	// all wells, indexed by (well.FirstPerf + connection.Perf)*NumActive.
	PerfRates []float64

	BHPs []float64
	THPs []float64

	InjectionModes  []InjectorMode
	ProductionModes []ProducerMode

	// StoppedFlags marks wells already stopped by the simulator.
	StoppedFlags []bool
}

// NewWellState allocates zeroed state for the given number of wells and total
// perforation count under the supplied phase layout.
func NewWellState(numWells, numPerfs int, pu PhaseUsage) *WellState {
	np := pu.NumActive()
	return &WellState{
		Usage:           pu,
		SurfaceRates:    make([]float64, numWells*np),
		ReservoirRates:  make([]float64, numWells*np),
		Potentials:      make([]float64, numWells*np),
		PerfRates:       make([]float64, numPerfs*np),
		BHPs:            make([]float64, numWells),
		THPs:            make([]float64, numWells),
		InjectionModes:  make([]InjectorMode, numWells),
		ProductionModes: make([]ProducerMode, numWells),
		StoppedFlags:    make([]bool, numWells),
	}
}

// NumWells returns the number of well slots.
func (ws *WellState) NumWells() int { return len(ws.BHPs) }

func (ws *WellState) slot(vec []float64, well int) []float64 {
	np := ws.Usage.NumActive()
	lo := well * np
	if lo < 0 || lo+np > len(vec) {
		panic(fmt.Sprintf("domain: well index %d out of range", well))
	}
	return vec[lo : lo+np : lo+np]
}

// WellSurfaceRates returns the well's mutable surface-rate slice.
func (ws *WellState) WellSurfaceRates(well int) []float64 {
	return ws.slot(ws.SurfaceRates, well)
}

// WellReservoirRates returns the well's mutable reservoir-voidage slice.
func (ws *WellState) WellReservoirRates(well int) []float64 {
	return ws.slot(ws.ReservoirRates, well)
}

// WellPotentials returns the well's phase-potential slice.
func (ws *WellState) WellPotentials(well int) []float64 {
	return ws.slot(ws.Potentials, well)
}

// ConnectionRates returns the phase-rate slice of a single connection, given
// its absolute perforation index.
func (ws *WellState) ConnectionRates(perf int) []float64 {
	return ws.slot(ws.PerfRates, perf)
}

// BHP returns the well's bottom-hole pressure.
func (ws *WellState) BHP(well int) float64 { return ws.BHPs[well] }

// THP returns the well's tubing-head pressure.
func (ws *WellState) THP(well int) float64 { return ws.THPs[well] }

// InjectionMode returns the well's active injection control mode.
func (ws *WellState) InjectionMode(well int) InjectorMode { return ws.InjectionModes[well] }

// SetInjectionMode records a control-mode switch for an injector.
func (ws *WellState) SetInjectionMode(well int, m InjectorMode) { ws.InjectionModes[well] = m }

// ProductionMode returns the well's active production control mode.
func (ws *WellState) ProductionMode(well int) ProducerMode { return ws.ProductionModes[well] }

// SetProductionMode records a control-mode switch for a producer.
func (ws *WellState) SetProductionMode(well int, m ProducerMode) { ws.ProductionModes[well] = m }

// Stopped reports whether the simulator has already stopped the well.
func (ws *WellState) Stopped(well int) bool { return ws.StoppedFlags[well] }

// ScaleWellRates multiplies every phase rate in the well's surface-rate slot
// by factor. This is the documented rescale-on-group-violation path; no other
// engine code may rewrite solver-owned rates.
func (ws *WellState) ScaleWellRates(well int, factor float64) {
	rates := ws.WellSurfaceRates(well)
	for p := range rates {
		rates[p] *= factor
	}
}

// GroupState carries the aggregate per-group simulation state (surface-rate
// totals as positive magnitudes, guide rates). Read-only input to the group
// constraint checker.
type GroupState struct {
	// InjectionRates maps group name to active-phase injection totals.
	InjectionRates map[string][]float64
	// ProductionRates maps group name to active-phase production totals.
	ProductionRates map[string][]float64
	// GuideRates maps group name to its allocation guide rate.
	GuideRates map[string]float64
}
