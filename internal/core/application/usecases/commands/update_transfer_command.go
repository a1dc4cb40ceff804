package commands

import (
	"errors"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/guard"
)

var ErrUpdateTransferCommandIsNotConstructed = errors.New(
	"UpdateTransferCommand must be created via NewUpdateTransferCommand constructor",
)

// UpdateTransferCommand edits a Draft order. Only the non-nil patch fields change.
type UpdateTransferCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	patch   TransferPatchInput

	guard guard.ConstructorGuard
}

func NewUpdateTransferCommand(orderID kernel.UUID, actor kernel.Actor, patch TransferPatchInput) (UpdateTransferCommand, error) {
	cmd := UpdateTransferCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return UpdateTransferCommand{}, err
	}

	return cmd, nil
}

func (c UpdateTransferCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTransferCommandIsNotConstructed)
}

func (c UpdateTransferCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateTransferCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateTransferCommand) Patch() TransferPatchInput {
	return c.patch
}

func (c *UpdateTransferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateTransferCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
