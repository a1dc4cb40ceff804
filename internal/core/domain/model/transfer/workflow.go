package transfer

import (
	"fmt"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/errs"
)

// Transition is one requested workflow step together with its arguments.
// Remarks is the approval note or the reject/cancel reason.
type Transition struct {
	Action         Action
	Actor          kernel.Actor
	Remarks        string
	TrackingNumber string
	Receipts       []ItemReceipt
}

// Event describes the outcome of a successful Reduce.
type Event struct {
	OrderID     kernel.UUID
	OrderNumber string
	Action      Action
	From        Status
	To          Status
	Actor       kernel.Actor
	At          time.Time
	NoOp        bool
}

func (e Event) String() string {
	if e.NoOp {
		return fmt.Sprintf("%s %s: already %s", e.Action, e.OrderNumber, e.To)
	}
	return fmt.Sprintf("%s %s: %s -> %s by %s", e.Action, e.OrderNumber, e.From, e.To, e.Actor.ID())
}

// Reduce applies t to a clone of o and returns the new order with the event
// describing what happened. o itself is never modified; on error the
// returned order is nil.
func Reduce(o *Order, t Transition, at time.Time) (*Order, Event, error) {
	if err := o.Validate(); err != nil {
		return nil, Event{}, err
	}

	next := o.Clone()
	from := next.status

	var (
		noop bool
		err  error
	)
	switch t.Action {
	case Submit:
		noop, err = next.Submit(t.Actor, at)
	case Approve:
		noop, err = next.Approve(t.Actor, t.Remarks, at)
	case Reject:
		noop, err = next.Reject(t.Actor, t.Remarks, at)
	case Start:
		noop, err = next.Start(t.Actor, t.TrackingNumber, at)
	case Receive:
		noop, err = next.Receive(t.Actor, t.Receipts, at)
	case Complete:
		noop, err = next.Complete(t.Actor, t.Receipts, at)
	case Cancel:
		noop, err = next.Cancel(t.Actor, t.Remarks, at)
	default:
		err = errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%d is not a valid action", t.Action))
	}
	if err != nil {
		return nil, Event{}, err
	}

	return next, Event{
		OrderID:     next.id,
		OrderNumber: next.number,
		Action:      t.Action,
		From:        from,
		To:          next.status,
		Actor:       t.Actor,
		At:          at,
		NoOp:        noop,
	}, nil
}
