package core

// Stable warning category codes attached to unsupported-feature log messages.
// Downstream log aggregation keys on these strings; they must not change.
const (
	// WarnMinReservoirFluidRate marks the unimplemented minimum
	// reservoir-fluid production rate limit.
	WarnMinReservoirFluidRate = "NOT_SUPPORTING_MIN_RESERVOIR_FLUID_RATE"
	// WarnMaxGasLiquidRatio marks the unimplemented maximum gas-liquid
	// ratio limit.
	WarnMaxGasLiquidRatio = "NOT_SUPPORTING_MAX_GLR"
	// WarnEndRun marks the unimplemented end-run-on-closure policy.
	WarnEndRun = "NOT_SUPPORTING_ENDRUN"
	// WarnFollowOnWell marks the unimplemented follow-on well policy.
	WarnFollowOnWell = "NOT_SUPPORTING_FOLLOWONWELL"
	// WarnWorkoverType marks an unsupported workover policy value.
	WarnWorkoverType = "NOT_SUPPORTED_WORKOVER_TYPE"
)
