package commands

import (
	"errors"
	"fmt"
	"strings"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/errs"
	"transferflow/internal/pkg/guard"
)

var ErrBatchApplyCommandIsNotConstructed = errors.New(
	"BatchApplyCommand must be created via NewBatchApplyCommand constructor",
)

// BatchOperation is an operation that can be applied to many orders at once.
type BatchOperation int

const (
	UnknownBatchOperation BatchOperation = iota
	BatchDelete
	BatchSubmit
	BatchApprove
	BatchReject
	BatchCancel
)

func AllBatchOperations() []BatchOperation {
	return []BatchOperation{BatchDelete, BatchSubmit, BatchApprove, BatchReject, BatchCancel}
}

func (o BatchOperation) String() string {
	switch o {
	case BatchDelete:
		return "delete"
	case BatchSubmit:
		return "submit"
	case BatchApprove:
		return "approve"
	case BatchReject:
		return "reject"
	case BatchCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Action maps a workflow operation to its transfer action; delete has none.
func (o BatchOperation) Action() (transfer.Action, bool) {
	switch o {
	case BatchSubmit:
		return transfer.Submit, true
	case BatchApprove:
		return transfer.Approve, true
	case BatchReject:
		return transfer.Reject, true
	case BatchCancel:
		return transfer.Cancel, true
	default:
		return transfer.UnknownAction, false
	}
}

func ParseBatchOperation(s string) (BatchOperation, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, op := range AllBatchOperations() {
		if op.String() == want {
			return op, nil
		}
	}
	return UnknownBatchOperation, errs.NewValueIsInvalidErrorWithCause("batch operation",
		fmt.Errorf("%q is not a valid batch operation", s))
}

// BatchApplyCommand applies one operation to a list of order ids. Duplicate
// ids are dropped, keeping the first occurrence.
type BatchApplyCommand struct { //nolint:recvcheck //using for validation
	operation BatchOperation
	ids       []kernel.UUID
	actor     kernel.Actor
	remarks   string

	guard guard.ConstructorGuard
}

func NewBatchApplyCommand(
	operation BatchOperation,
	ids []kernel.UUID,
	actor kernel.Actor,
	remarks string,
) (BatchApplyCommand, error) {
	cmd := BatchApplyCommand{
		remarks: remarks,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOperation(operation, remarks),
		cmd.setIDs(ids),
		cmd.setActor(actor),
	); err != nil {
		return BatchApplyCommand{}, err
	}

	return cmd, nil
}

func (c BatchApplyCommand) Validate() error {
	return c.guard.Validate(ErrBatchApplyCommandIsNotConstructed)
}

func (c BatchApplyCommand) Operation() BatchOperation {
	return c.operation
}

// IDs returns the de-duplicated ids in request order.
func (c BatchApplyCommand) IDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.ids...)
}

func (c BatchApplyCommand) Actor() kernel.Actor {
	return c.actor
}

func (c BatchApplyCommand) Remarks() string {
	return c.remarks
}

func (c *BatchApplyCommand) setOperation(op BatchOperation, remarks string) error {
	if _, err := ParseBatchOperation(op.String()); err != nil {
		return err
	}
	if op == BatchReject && strings.TrimSpace(remarks) == "" {
		return errs.NewValueIsRequiredError("reject reason")
	}
	c.operation = op
	return nil
}

func (c *BatchApplyCommand) setIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("ids")
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	var errList []error
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("id %d: %w", i+1, err))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.ids = unique
	return nil
}

func (c *BatchApplyCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
