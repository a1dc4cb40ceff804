package commands

import (
	"context"
	"io"
	"log/slog"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "transferflow/internal/core/application/usecases/commands"

// workflowInstruments carries the tracer, counters and logger shared by the
// handlers that run workflow transitions.
type workflowInstruments struct {
	tracer      trace.Tracer
	transitions metric.Int64Counter
	batchItems  metric.Int64Counter
	logger      *slog.Logger
}

func newWorkflowInstruments(instr *telemetry.Instruments, logger *slog.Logger, component string) workflowInstruments {
	if instr == nil {
		instr = telemetry.Noop()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	meter := instr.Meter(instrumentationName)
	transitions, _ := meter.Int64Counter("transfer.transitions",
		metric.WithDescription("Number of applied workflow transitions"))
	batchItems, _ := meter.Int64Counter("transfer.batch.items",
		metric.WithDescription("Number of items processed by batch operations"))

	return workflowInstruments{
		tracer:      instr.Tracer(instrumentationName),
		transitions: transitions,
		batchItems:  batchItems,
		logger:      logger.With("component", component),
	}
}

func (w workflowInstruments) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return w.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (w workflowInstruments) recordEvent(ctx context.Context, ev transfer.Event) {
	if w.transitions != nil {
		w.transitions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("transfer.action", ev.Action.String()),
			attribute.String("transfer.from", ev.From.String()),
			attribute.String("transfer.to", ev.To.String()),
			attribute.Bool("transfer.noop", ev.NoOp),
		))
	}
	w.logger.InfoContext(ctx, "transfer transition applied",
		"order_id", ev.OrderID.String(),
		"order_number", ev.OrderNumber,
		"action", ev.Action.String(),
		"from", ev.From.String(),
		"to", ev.To.String(),
		"actor", ev.Actor.ID(),
		"noop", ev.NoOp,
	)
}

func (w workflowInstruments) recordBatchItem(ctx context.Context, op BatchOperation, success bool) {
	if w.batchItems == nil {
		return
	}
	w.batchItems.Add(ctx, 1, metric.WithAttributes(
		attribute.String("batch.operation", op.String()),
		attribute.Bool("batch.success", success),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// applyTransition loads the order inside uow, reduces it and stores the result
// unless the transition was a no-op. The caller owns Begin and Commit.
func applyTransition(
	ctx context.Context,
	uow TransferUoW,
	id kernel.UUID,
	t transfer.Transition,
	at time.Time,
) (*transfer.Order, transfer.Event, error) {
	repo := uow.TransferRepository()

	current, err := repo.Get(ctx, id)
	if err != nil {
		return nil, transfer.Event{}, err
	}

	next, ev, err := transfer.Reduce(current, t, at)
	if err != nil {
		return nil, transfer.Event{}, err
	}

	if !ev.NoOp {
		if err = repo.Update(ctx, next); err != nil {
			return nil, transfer.Event{}, err
		}
	}
	return next, ev, nil
}
