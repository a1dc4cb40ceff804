package commands

import (
	"errors"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/guard"
)

var ErrCreateTransferCommandIsNotConstructed = errors.New(
	"CreateTransferCommand must be created via NewCreateTransferCommand constructor",
)

// CreateTransferCommand represents a request to register a new Draft transfer order.
//
// Example:
//
//	cmd, err := NewCreateTransferCommand(kernel.NewUUID(), actor, TransferInput{
//	    Type:           transfer.WarehouseToStore,
//	    Priority:       transfer.Normal,
//	    Title:          "Weekly restock",
//	    FromLocationID: warehouseID,
//	    ToLocationID:   storeID,
//	    PlannedDate:    tomorrow,
//	    Items:          items,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid transfer data: %w", err)
//	}
//	order, err := handler.Handle(ctx, cmd)
type CreateTransferCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	input   TransferInput

	guard guard.ConstructorGuard
}

// NewCreateTransferCommand checks the identifiers; field rules are enforced by the domain.
func NewCreateTransferCommand(orderID kernel.UUID, actor kernel.Actor, input TransferInput) (CreateTransferCommand, error) {
	cmd := CreateTransferCommand{
		input: input,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return CreateTransferCommand{}, err
	}

	return cmd, nil
}

func (c CreateTransferCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransferCommandIsNotConstructed)
}

func (c CreateTransferCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateTransferCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateTransferCommand) Input() TransferInput {
	return c.input
}

func (c *CreateTransferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateTransferCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
