package commands

import (
	"errors"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/guard"
)

var ErrDeleteTransferCommandIsNotConstructed = errors.New(
	"DeleteTransferCommand must be created via NewDeleteTransferCommand constructor",
)

// DeleteTransferCommand removes an order and its items in any status.
type DeleteTransferCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteTransferCommand(orderID kernel.UUID) (DeleteTransferCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteTransferCommand{}, err
	}
	return DeleteTransferCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteTransferCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTransferCommandIsNotConstructed)
}

func (c DeleteTransferCommand) OrderID() kernel.UUID {
	return c.orderID
}
