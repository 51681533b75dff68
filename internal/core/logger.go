// Package core implements the well-control and economic-shutdown decision
// engine: per-well constraint checking, group-constraint escalation,
// economic-limit evaluation with worst-offender completion selection, and the
// orchestration that records shut-in decisions into the persistent ledger.
package core

// Logger is the minimal structured logging surface used by the engine.
// Implementations receive a message plus alternating key/value args.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
