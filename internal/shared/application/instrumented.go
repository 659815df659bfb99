package application

import (
	"context"
	"log/slog"

	"github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/pkg/observability"
)

// Instrumentation times commands and counts business-rule rejections by
// error code.
type Instrumentation struct {
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewInstrumentation creates an Instrumentation. Nil arguments fall back to
// the default logger and no-op metrics.
func NewInstrumentation(logger *slog.Logger, metrics observability.Metrics) *Instrumentation {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Instrumentation{logger: logger, metrics: metrics}
}

func (i *Instrumentation) observe(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx = observability.WithOperation(ctx, name)
	timer := observability.StartTimer(i.metrics, name)

	err := fn(ctx)
	timer.Stop(err)

	switch {
	case err == nil:
		i.logger.DebugContext(ctx, "command handled", "command", name)
	case domain.IsBusinessError(err) && domain.KindOf(err) != domain.KindConflict:
		i.metrics.Counter(observability.MetricBusinessRuleRejection, 1,
			observability.T("command", name),
			observability.T("code", domain.CodeOf(err)),
		)
		i.logger.InfoContext(ctx, "command rejected",
			"command", name,
			"kind", string(domain.KindOf(err)),
			"code", domain.CodeOf(err),
		)
	default:
		i.logger.ErrorContext(ctx, "command failed", "command", name, "error", err)
	}
	return err
}

// InstrumentedHandler wraps a CommandHandler with an Instrumentation.
type InstrumentedHandler[C Command, R any] struct {
	next CommandHandler[C, R]
	inst *Instrumentation
}

// Instrument wraps next.
func Instrument[C Command, R any](next CommandHandler[C, R], inst *Instrumentation) *InstrumentedHandler[C, R] {
	return &InstrumentedHandler[C, R]{next: next, inst: inst}
}

// Handle runs the wrapped handler.
func (h *InstrumentedHandler[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	var result R
	err := h.inst.observe(ctx, cmd.CommandName(), func(ctx context.Context) error {
		var err error
		result, err = h.next.Handle(ctx, cmd)
		return err
	})
	return result, err
}

// InstrumentedVoidHandler wraps a VoidCommandHandler with an Instrumentation.
type InstrumentedVoidHandler[C Command] struct {
	next VoidCommandHandler[C]
	inst *Instrumentation
}

// InstrumentVoid wraps next.
func InstrumentVoid[C Command](next VoidCommandHandler[C], inst *Instrumentation) *InstrumentedVoidHandler[C] {
	return &InstrumentedVoidHandler[C]{next: next, inst: inst}
}

// Handle runs the wrapped handler.
func (h *InstrumentedVoidHandler[C]) Handle(ctx context.Context, cmd C) error {
	return h.inst.observe(ctx, cmd.CommandName(), func(ctx context.Context) error {
		return h.next.Handle(ctx, cmd)
	})
}
