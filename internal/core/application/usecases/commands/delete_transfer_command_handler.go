package commands

import (
	"context"
)

type DeleteTransferCommandHandler struct {
	uowFactory TransferUoWFactory
}

func NewDeleteTransferCommandHandler(uowFactory TransferUoWFactory) DeleteTransferCommandHandler {
	return DeleteTransferCommandHandler{uowFactory: uowFactory}
}

// Handle returns ObjectNotFoundError when the order does not exist.
func (h DeleteTransferCommandHandler) Handle(ctx context.Context, cmd DeleteTransferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TransferRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
