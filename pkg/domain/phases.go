// Package domain defines the well, group, and schedule entities, the
// per-step simulation state snapshots, and the decision primitives used by
// the wellcore engine. It depends only on the standard library so that the
// contract between the engine and the surrounding simulation loop stays free
// of implementation concerns.
package domain

import "fmt"

// Phase identifies a logical fluid phase independent of the active-phase
// layout chosen by the physical model configuration.
type Phase int

// Logical phases recognised by the engine.
const (
	PhaseWater Phase = iota
	PhaseOil
	PhaseGas
	numPhases
)

// String returns the canonical phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWater:
		return "WATER"
	case PhaseOil:
		return "OIL"
	case PhaseGas:
		return "GAS"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PhaseUsage maps logical phases onto slots of the active-phase rate vectors.
// A phase may be inactive depending on the fluid-system configuration, in
// which case it has no slot and must not be read from state vectors.
//
// PhaseUsage values are immutable once constructed; the two stock
// configurations below cover the fluid systems shipped with the engine.
type PhaseUsage struct {
	used [numPhases]bool
	pos  [numPhases]int
	np   int
}

// NewPhaseUsage builds a usage mapping with the given phases active, assigning
// slots in the order the phases are listed.
func NewPhaseUsage(phases ...Phase) PhaseUsage {
	var pu PhaseUsage
	for _, p := range phases {
		if p < 0 || p >= numPhases {
			panic(fmt.Sprintf("domain: invalid phase %d", int(p)))
		}
		if pu.used[p] {
			continue
		}
		pu.used[p] = true
		pu.pos[p] = pu.np
		pu.np++
	}
	return pu
}

// BlackOilUsage returns the three-phase black-oil layout (water, oil, gas).
func BlackOilUsage() PhaseUsage {
	return NewPhaseUsage(PhaseWater, PhaseOil, PhaseGas)
}

// OilWaterUsage returns the two-phase oil-water layout used by dead-oil
// waterflood configurations.
func OilWaterUsage() PhaseUsage {
	return NewPhaseUsage(PhaseWater, PhaseOil)
}

// NumActive reports the number of active phases (the stride of per-well and
// per-connection rate vectors).
func (pu PhaseUsage) NumActive() int { return pu.np }

// Used reports whether the phase participates in the configured fluid system.
func (pu PhaseUsage) Used(p Phase) bool {
	return p >= 0 && p < numPhases && pu.used[p]
}

// Index returns the active-phase slot for p, and whether p is active.
func (pu PhaseUsage) Index(p Phase) (int, bool) {
	if !pu.Used(p) {
		return 0, false
	}
	return pu.pos[p], true
}

// MustIndex returns the active-phase slot for p and panics when p is
// inactive. Reading an inactive phase indicates a configuration defect in the
// caller, not a legitimate simulation state.
func (pu PhaseUsage) MustIndex(p Phase) int {
	idx, ok := pu.Index(p)
	if !ok {
		panic(fmt.Sprintf("domain: phase %s is not active in this fluid system", p))
	}
	return idx
}
