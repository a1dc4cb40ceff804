package commands

import (
	"context"
	"errors"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"
)

// UpdateTransferCommandHandler applies a partial edit to a Draft order.
// Changed endpoints are re-snapshotted from the directory; unchanged ones
// keep the snapshot taken earlier.
type UpdateTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	directory  ports.LocationDirectory
}

func NewUpdateTransferCommandHandler(
	uowFactory TransferUoWFactory,
	directory ports.LocationDirectory,
) UpdateTransferCommandHandler {
	return UpdateTransferCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

func (h UpdateTransferCommandHandler) Handle(ctx context.Context, cmd UpdateTransferCommand) (*transfer.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	patch := cmd.Patch()
	var from, to *kernel.LocationSnapshot
	var fromErr, toErr error
	if patch.FromLocationID != nil {
		var s kernel.LocationSnapshot
		s, fromErr = resolveLocation(ctx, h.directory, *patch.FromLocationID, "from")
		from = &s
	}
	if patch.ToLocationID != nil {
		var s kernel.LocationSnapshot
		s, toErr = resolveLocation(ctx, h.directory, *patch.ToLocationID, "to")
		to = &s
	}
	if err := errors.Join(fromErr, toErr); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TransferRepository()
	order, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = order.Update(patch.orderPatch(from, to), cmd.Actor(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
