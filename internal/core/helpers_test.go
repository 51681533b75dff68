package core

import (
	"fmt"
	"sync"

	"wellcore/internal/infra/persistence/memory"
	"wellcore/pkg/domain"
)

// scalingConverter converts surface volumes to voidage volumes by a uniform
// factor.
type scalingConverter struct {
	factor float64
	err    error
}

func (c scalingConverter) VoidageRates(_, _ int, surface, voidage []float64) error {
	if c.err != nil {
		return c.err
	}
	for p := range surface {
		voidage[p] = surface[p] * c.factor
	}
	return nil
}

func (c scalingConverter) VoidageCoefficients(_, _ int, coeff []float64) error {
	if c.err != nil {
		return c.err
	}
	for p := range coeff {
		coeff[p] *= c.factor
	}
	return nil
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

// captureLogger retains log calls for assertions.
type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) log(level, msg string, args ...any) {
	l.mu.Lock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
	l.mu.Unlock()
}

func (l *captureLogger) Debug(msg string, args ...any) { l.log("debug", msg, args...) }
func (l *captureLogger) Info(msg string, args ...any)  { l.log("info", msg, args...) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.log("warn", msg, args...) }
func (l *captureLogger) Error(msg string, args ...any) { l.log("error", msg, args...) }

// hasCode reports whether a log entry carries the given warning code value.
func (l *captureLogger) hasCode(code string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		for i := 0; i+1 < len(e.args); i += 2 {
			if e.args[i] == "code" && e.args[i+1] == code {
				return true
			}
		}
	}
	return false
}

func newTestService(opts ...Option) *Service {
	base := []Option{WithLogger(&captureLogger{})}
	return NewService(memory.NewStore(nil), scalingConverter{factor: 1}, append(base, opts...)...)
}

// producerWell builds a single-completion producer with three open
// connections, suitable for the economic-limit tests.
func producerWell(name string) *domain.Well {
	return &domain.Well{
		Name:             name,
		Group:            "PLAT",
		Role:             domain.WellRoleProducer,
		EfficiencyFactor: 1,
		AutomaticShutIn:  true,
		PredictionMode:   true,
		Connections: []domain.Connection{
			{Perf: 0, Completion: 1, Open: true},
			{Perf: 1, Completion: 2, Open: true},
			{Perf: 2, Completion: 3, Open: true},
		},
	}
}

// setConnRates writes a black-oil rate triple into the perforation slot.
func setConnRates(ws *domain.WellState, perf int, water, oil, gas float64) {
	rates := ws.ConnectionRates(perf)
	rates[ws.Usage.MustIndex(domain.PhaseWater)] = water
	rates[ws.Usage.MustIndex(domain.PhaseOil)] = oil
	rates[ws.Usage.MustIndex(domain.PhaseGas)] = gas
}

// setWellRates writes a black-oil rate triple into the well's surface slot.
func setWellRates(ws *domain.WellState, well int, water, oil, gas float64) {
	rates := ws.WellSurfaceRates(well)
	rates[ws.Usage.MustIndex(domain.PhaseWater)] = water
	rates[ws.Usage.MustIndex(domain.PhaseOil)] = oil
	rates[ws.Usage.MustIndex(domain.PhaseGas)] = gas
}

// stubGroupEvaluator returns fixed answers for group checks.
type stubGroupEvaluator struct {
	violated bool
	scale    float64
	err      error
	lastReq  *domain.GroupLimitRequest
}

func (g *stubGroupEvaluator) CheckInjectionLimit(req domain.GroupLimitRequest) (bool, float64, error) {
	g.lastReq = &req
	return g.violated, g.scale, g.err
}

func (g *stubGroupEvaluator) CheckProductionLimit(req domain.GroupLimitRequest) (bool, float64, error) {
	g.lastReq = &req
	return g.violated, g.scale, g.err
}

// failingCollective always errors, to exercise the reduction abort path.
type failingCollective struct{}

func (failingCollective) Sum([]float64) error { return fmt.Errorf("partition mismatch") }

func singleGroupSchedule(group domain.Group) *domain.Schedule {
	return &domain.Schedule{Steps: []domain.ScheduleStep{
		{Groups: map[string]domain.Group{group.Name: group}},
	}}
}
