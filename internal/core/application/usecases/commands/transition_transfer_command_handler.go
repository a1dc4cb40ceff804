package commands

import (
	"context"
	"log/slog"
	"time"

	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

// TransitionResult is the order after the transition and the event describing it.
type TransitionResult struct {
	Order *transfer.Order
	Event transfer.Event
}

// TransitionTransferCommandHandler runs one workflow action on one order.
// Illegal transitions fail with StateConflictError and leave the order untouched.
type TransitionTransferCommandHandler struct {
	uowFactory  TransferUoWFactory
	instruments workflowInstruments
}

func NewTransitionTransferCommandHandler(
	uowFactory TransferUoWFactory,
	instr *telemetry.Instruments,
	logger *slog.Logger,
) TransitionTransferCommandHandler {
	return TransitionTransferCommandHandler{
		uowFactory:  uowFactory,
		instruments: newWorkflowInstruments(instr, logger, "transition_handler"),
	}
}

func (h TransitionTransferCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionTransferCommand,
) (result TransitionResult, err error) {
	if err = cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	t := cmd.Transition()
	ctx, span := h.instruments.startSpan(ctx, "TransitionTransfer",
		attribute.String("transfer.id", cmd.OrderID().String()),
		attribute.String("transfer.action", t.Action.String()),
	)
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	order, ev, err := applyTransition(ctx, uow, cmd.OrderID(), t, time.Now().UTC())
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.instruments.recordEvent(ctx, ev)
	return TransitionResult{Order: order, Event: ev}, nil
}
