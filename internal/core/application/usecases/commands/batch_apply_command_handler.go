package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/errs"
	"transferflow/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

// BatchItemResult is the outcome for one id of a batch.
type BatchItemResult struct {
	ID        kernel.UUID
	Success   bool
	ErrorKind errs.Kind
	Error     string
}

// BatchOutcome summarizes a batch. Applied counts successful items; Results
// has one entry per distinct id in request order.
type BatchOutcome struct {
	Operation BatchOperation
	Attempted int
	Applied   int
	Results   []BatchItemResult
}

// Failed returns the results that did not succeed.
func (o BatchOutcome) Failed() []BatchItemResult {
	failed := make([]BatchItemResult, 0)
	for _, r := range o.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

// BatchApplyCommandHandler applies one operation to many orders.
//
// Business rules:
//   - every id runs in its own unit of work; earlier items stay applied when later ones fail
//   - missing ids are recorded as NOT_FOUND and never fail the batch
//   - per-item errors such as state conflicts are recorded and the batch continues
//   - only a cancelled context stops the batch early
type BatchApplyCommandHandler struct {
	uowFactory  TransferUoWFactory
	instruments workflowInstruments
}

func NewBatchApplyCommandHandler(
	uowFactory TransferUoWFactory,
	instr *telemetry.Instruments,
	logger *slog.Logger,
) BatchApplyCommandHandler {
	return BatchApplyCommandHandler{
		uowFactory:  uowFactory,
		instruments: newWorkflowInstruments(instr, logger, "batch_handler"),
	}
}

func (h BatchApplyCommandHandler) Handle(ctx context.Context, cmd BatchApplyCommand) (outcome BatchOutcome, err error) {
	if err = cmd.Validate(); err != nil {
		return BatchOutcome{}, err
	}

	ids := cmd.IDs()
	ctx, span := h.instruments.startSpan(ctx, "BatchApply",
		attribute.String("batch.operation", cmd.Operation().String()),
		attribute.Int("batch.size", len(ids)),
	)
	defer func() { endSpan(span, err) }()

	outcome = BatchOutcome{
		Operation: cmd.Operation(),
		Results:   make([]BatchItemResult, 0, len(ids)),
	}

	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return outcome, err
		}

		outcome.Attempted++
		itemErr := h.applyOne(ctx, cmd, id)
		result := BatchItemResult{ID: id, Success: itemErr == nil}
		if itemErr != nil {
			result.ErrorKind = errs.KindOf(itemErr)
			result.Error = itemErr.Error()
			if !errors.Is(itemErr, errs.ErrObjectNotFound) {
				h.instruments.logger.WarnContext(ctx, "batch item failed",
					"operation", cmd.Operation().String(),
					"order_id", id.String(),
					"error", itemErr,
				)
			}
		} else {
			outcome.Applied++
		}
		outcome.Results = append(outcome.Results, result)
		h.instruments.recordBatchItem(ctx, cmd.Operation(), result.Success)
	}

	span.SetAttributes(attribute.Int("batch.applied", outcome.Applied))
	h.instruments.logger.InfoContext(ctx, "batch applied",
		"operation", cmd.Operation().String(),
		"attempted", outcome.Attempted,
		"applied", outcome.Applied,
	)
	return outcome, nil
}

func (h BatchApplyCommandHandler) applyOne(ctx context.Context, cmd BatchApplyCommand, id kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	action, isTransition := cmd.Operation().Action()
	if !isTransition {
		if err := uow.TransferRepository().Delete(ctx, id); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	_, ev, err := applyTransition(ctx, uow, id, transfer.Transition{
		Action:  action,
		Actor:   cmd.Actor(),
		Remarks: cmd.Remarks(),
	}, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.instruments.recordEvent(ctx, ev)
	return nil
}
