package core

import (
	"context"
	"fmt"
	"time"

	"wellcore/internal/blob"
	"wellcore/pkg/domain"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// PhysicalLimitChecker tests a well against its physical (THP/BHP) operating
// envelope and records closures into the ledger transaction. The envelope
// model lives with the flow solver; the engine only sequences the call.
type PhysicalLimitChecker interface {
	UpdateWellTestStatePhysical(ctx context.Context, well *domain.Well, ws *domain.WellState,
		simTime float64, logMessages bool, tx domain.LedgerTx, rpt *domain.StepReport) error
}

// Service is the per-step decision engine. It owns no simulation state: the
// schedule, WellState and GroupState are supplied by the simulation loop,
// which drives the service single-threaded within a step.
type Service struct {
	ledger     domain.LedgerStore
	rateConv   domain.RateConverter
	groups     domain.GroupLimitEvaluator
	collective domain.Collective
	physical   PhysicalLimitChecker
	archive    blob.Store

	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	clock   Clock

	logMessages bool
	currentStep int
}

// Option customises a Service.
type Option func(*Service)

// WithLogger installs a logger. The default discards all messages.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics installs a metrics recorder for operation timings and outcomes.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer installs a tracer for per-operation spans.
func WithTracer(t Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithClock overrides the time source used for archived reports.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithGroupEvaluator installs the group-hierarchy evaluator. The default is
// the in-tree guide-rate evaluator.
func WithGroupEvaluator(g domain.GroupLimitEvaluator) Option {
	return func(s *Service) {
		if g != nil {
			s.groups = g
		}
	}
}

// WithCollective installs the cross-partition reduction. The default is the
// single-process local sum.
func WithCollective(c domain.Collective) Option {
	return func(s *Service) {
		if c != nil {
			s.collective = c
		}
	}
}

// WithPhysicalChecker installs the physical-limit checker invoked before the
// economic evaluation. Without one the physical check is skipped.
func WithPhysicalChecker(p PhysicalLimitChecker) Option {
	return func(s *Service) { s.physical = p }
}

// WithArchive installs a blob store receiving per-step decision reports.
func WithArchive(store blob.Store) Option {
	return func(s *Service) { s.archive = store }
}

// WithMessages controls whether closure decisions are logged at info level.
func WithMessages(enabled bool) Option {
	return func(s *Service) { s.logMessages = enabled }
}

// NewService constructs the decision engine over the given ledger store and
// rate converter.
func NewService(ledger domain.LedgerStore, rateConv domain.RateConverter, opts ...Option) *Service {
	s := &Service{
		ledger:      ledger,
		rateConv:    rateConv,
		groups:      GuideRateGroupEvaluator{},
		collective:  domain.LocalCollective{},
		logger:      noopLogger{},
		clock:       systemClock{},
		logMessages: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger returns the underlying shut-in ledger store.
func (s *Service) Ledger() domain.LedgerStore { return s.ledger }

// SetCurrentStep advances the engine's report step index used for schedule
// lookups.
func (s *Service) SetCurrentStep(step int) { s.currentStep = step }

// CurrentStep returns the engine's report step index.
func (s *Service) CurrentStep() int { return s.currentStep }

// instrument starts a span and returns a completion callback that records
// metrics and ends the span.
func (s *Service) instrument(ctx context.Context, operation string) (context.Context, func(error)) {
	start := s.clock.Now()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	return ctx, func(err error) {
		if s.metrics != nil {
			s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
		}
		if span != nil {
			span.End(err)
		}
	}
}

// CalculateReservoirRates converts the well's surface-rate slot into
// reservoir-voidage rates via the rate converter and writes the result into
// the well's reservoir-rate slot.
func (s *Service) CalculateReservoirRates(well *domain.Well, ws *domain.WellState) error {
	const fipRegion = 0 // region selection beyond region 0 is a known limitation
	surface := ws.WellSurfaceRates(well.Index)
	voidage := ws.WellReservoirRates(well.Index)
	if err := s.rateConv.VoidageRates(fipRegion, well.PvtRegion, surface, voidage); err != nil {
		return fmt.Errorf("voidage rates for well %s: %w", well.Name, err)
	}
	return nil
}
