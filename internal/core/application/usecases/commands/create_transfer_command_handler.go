package commands

import (
	"context"
	"errors"
	"time"

	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"
)

// CreateTransferCommandHandler resolves the endpoints, numbers the order and
// stores it in Draft.
type CreateTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	directory  ports.LocationDirectory
}

func NewCreateTransferCommandHandler(
	uowFactory TransferUoWFactory,
	directory ports.LocationDirectory,
) CreateTransferCommandHandler {
	return CreateTransferCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

// Handle returns the stored order. Location problems and field problems are
// reported together.
func (h CreateTransferCommandHandler) Handle(ctx context.Context, cmd CreateTransferCommand) (*transfer.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	input := cmd.Input()
	from, fromErr := resolveLocation(ctx, h.directory, input.FromLocationID, "from")
	to, toErr := resolveLocation(ctx, h.directory, input.ToLocationID, "to")
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
	at := time.Now().UTC()

	number, err := repo.NextOrderNumber(ctx, at)
	if err != nil {
		return nil, err
	}

	order, err := transfer.NewOrder(cmd.OrderID(), number, input.orderData(from, to), cmd.Actor(), at)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
