package commands

import (
	"errors"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/guard"
)

var ErrTransitionTransferCommandIsNotConstructed = errors.New(
	"TransitionTransferCommand must be created via NewTransitionTransferCommand constructor",
)

// TransitionArgs are the optional inputs of a workflow action. Remarks holds
// the approval note or the reject/cancel reason.
type TransitionArgs struct {
	Remarks        string
	TrackingNumber string
	Receipts       []transfer.ItemReceipt
}

// TransitionTransferCommand asks for one workflow action on one order.
//
// Example:
//
//	cmd, err := NewTransitionTransferCommand(orderID, transfer.Start, actor,
//	    TransitionArgs{TrackingNumber: "TRK123"})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionTransferCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	transition transfer.Transition

	guard guard.ConstructorGuard
}

func NewTransitionTransferCommand(
	orderID kernel.UUID,
	action transfer.Action,
	actor kernel.Actor,
	args TransitionArgs,
) (TransitionTransferCommand, error) {
	cmd := TransitionTransferCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		validateAction(action),
		actor.Validate(),
	); err != nil {
		return TransitionTransferCommand{}, err
	}

	cmd.orderID = orderID
	cmd.transition = transfer.Transition{
		Action:         action,
		Actor:          actor,
		Remarks:        args.Remarks,
		TrackingNumber: args.TrackingNumber,
		Receipts:       args.Receipts,
	}
	return cmd, nil
}

func (c TransitionTransferCommand) Validate() error {
	return c.guard.Validate(ErrTransitionTransferCommandIsNotConstructed)
}

func (c TransitionTransferCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionTransferCommand) Transition() transfer.Transition {
	return c.transition
}

func validateAction(action transfer.Action) error {
	_, err := transfer.ParseAction(action.String())
	return err
}
