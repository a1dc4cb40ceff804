package transfer_test

import (
	"testing"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_HappyPath(t *testing.T) {
	o := newDraft(t)
	applicant := mustActor(t, "clerk")
	manager := mustActor(t, "manager")
	driver := mustActor(t, "driver")

	t.Log("submit moves a fresh draft to pending approval")
	o, ev, err := transfer.Reduce(o, transfer.Transition{Action: transfer.Submit, Actor: applicant}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, transfer.PendingApproval, o.Status())
	assert.Equal(t, transfer.Draft, ev.From)
	assert.Equal(t, transfer.PendingApproval, ev.To)
	assert.False(t, ev.NoOp)
	require.NotNil(t, o.Applicant())
	assert.Equal(t, "clerk", o.Applicant().ActorID())

	t.Log("approve records the approver remarks")
	o, _, err = transfer.Reduce(o, transfer.Transition{Action: transfer.Approve, Actor: manager, Remarks: "ok"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, transfer.Approved, o.Status())
	require.NotNil(t, o.Approver())
	assert.Equal(t, "ok", o.Approver().Remarks())
	assert.Equal(t, fixedNow, o.Approver().At())

	t.Log("start sets the tracking number and ship date")
	o, _, err = transfer.Reduce(o, transfer.Transition{Action: transfer.Start, Actor: driver, TrackingNumber: "TRK123"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, transfer.InTransit, o.Status())
	assert.Equal(t, "TRK123", o.TrackingNumber())
	require.NotNil(t, o.ActualShipDate())
	assert.Equal(t, fixedNow, *o.ActualShipDate())
	require.NotNil(t, o.Operator())
	assert.Equal(t, "driver", o.Operator().ActorID())

	t.Log("complete applies matched receipts only")
	items := o.Items()
	receipt, err := transfer.NewItemReceipt(items[0].ID(), 8)
	require.NoError(t, err)
	stray, err := transfer.NewItemReceipt(kernel.NewUUID(), 99)
	require.NoError(t, err)

	o, ev, err = transfer.Reduce(o, transfer.Transition{
		Action:   transfer.Complete,
		Actor:    driver,
		Receipts: []transfer.ItemReceipt{receipt, stray},
	}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, transfer.Completed, o.Status())
	assert.Equal(t, transfer.Completed, ev.To)
	require.NotNil(t, o.ActualReceiveDate())

	items = o.Items()
	require.NotNil(t, items[0].ActualQuantity())
	assert.Equal(t, 8, *items[0].ActualQuantity())
	assert.Equal(t, 8, *items[0].ReceivedQuantity())
	assert.Nil(t, items[1].ActualQuantity())
	assert.Nil(t, items[1].ReceivedQuantity())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	o := newDraft(t)
	before := o.State()

	next, _, err := transfer.Reduce(o, transfer.Transition{Action: transfer.Submit, Actor: mustActor(t, "u1")}, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, before, o.State())
	assert.Equal(t, transfer.PendingApproval, next.Status())
}

func TestReduce_Cancel(t *testing.T) {
	for _, s := range transfer.AllStatuses() {
		if s.IsTerminal() {
			continue
		}
		t.Run(s.String(), func(t *testing.T) {
			o := orderIn(t, s)

			next, ev, err := transfer.Reduce(o, transfer.Transition{
				Action: transfer.Cancel, Actor: mustActor(t, "u1"), Remarks: "customer request",
			}, fixedNow)

			require.NoError(t, err)
			assert.Equal(t, transfer.Cancelled, next.Status())
			assert.Equal(t, "customer request", next.Remarks())
			assert.Equal(t, s, ev.From)
		})
	}
}

func TestReduce_SubmitOnlyFromDraft(t *testing.T) {
	for _, s := range transfer.AllStatuses() {
		if s == transfer.Draft {
			continue
		}
		t.Run(s.String(), func(t *testing.T) {
			o := orderIn(t, s)

			next, _, err := transfer.Reduce(o, transfer.Transition{Action: transfer.Submit, Actor: mustActor(t, "u1")}, fixedNow)

			require.Error(t, err)
			assert.Nil(t, next)
			assert.ErrorIs(t, err, errs.ErrStateConflict)
			assert.Equal(t, errs.KindStateConflict, errs.KindOf(err))
			assert.Contains(t, err.Error(), o.ID().String())
			assert.Equal(t, s, o.Status())
		})
	}
}

func TestReduce_TerminalNoOp(t *testing.T) {
	o := orderIn(t, transfer.Cancelled)
	before := o.State()

	next, ev, err := transfer.Reduce(o, transfer.Transition{
		Action: transfer.Cancel, Actor: mustActor(t, "other"), Remarks: "again",
	}, fixedNow.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.True(t, ev.NoOp)
	assert.Equal(t, before, next.State())
	assert.Equal(t, "duplicate", next.Remarks())
}

func TestReduce_RejectRequiresReason(t *testing.T) {
	o := orderIn(t, transfer.PendingApproval)

	_, _, err := transfer.Reduce(o, transfer.Transition{Action: transfer.Reject, Actor: mustActor(t, "m")}, fixedNow)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	next, _, err := transfer.Reduce(o, transfer.Transition{Action: transfer.Reject, Actor: mustActor(t, "m"), Remarks: "over budget"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, transfer.Rejected, next.Status())
	assert.Equal(t, "over budget", next.Approver().Remarks())
}

func TestReduce_ReceiveThenComplete(t *testing.T) {
	o := orderIn(t, transfer.InTransit)
	items := o.Items()
	first, err := transfer.NewItemReceipt(items[0].ID(), 6)
	require.NoError(t, err)
	second, err := transfer.NewItemReceipt(items[1].ID(), 4)
	require.NoError(t, err)

	o, _, err = transfer.Reduce(o, transfer.Transition{
		Action: transfer.Receive, Actor: mustActor(t, "d"), Receipts: []transfer.ItemReceipt{first},
	}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, transfer.PartialReceived, o.Status())
	assert.Nil(t, o.ActualReceiveDate())
	assert.True(t, o.Items()[0].IsReceived())
	assert.False(t, o.Items()[1].IsReceived())

	o, _, err = transfer.Reduce(o, transfer.Transition{
		Action: transfer.Complete, Actor: mustActor(t, "d"), Receipts: []transfer.ItemReceipt{second},
	}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, transfer.Completed, o.Status())
	assert.Equal(t, 6, *o.Items()[0].ReceivedQuantity())
	assert.Equal(t, 4, *o.Items()[1].ReceivedQuantity())
}

func TestReduce_InvalidInput(t *testing.T) {
	o := newDraft(t)

	_, _, err := transfer.Reduce(o, transfer.Transition{Action: transfer.UnknownAction, Actor: mustActor(t, "u")}, fixedNow)
	require.Error(t, err)

	_, _, err = transfer.Reduce(o, transfer.Transition{Action: transfer.Submit}, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actor must be created")

	_, _, err = transfer.Reduce(nil, transfer.Transition{Action: transfer.Submit, Actor: mustActor(t, "u")}, fixedNow)
	require.ErrorIs(t, err, transfer.ErrOrderIsNotConstructed)
}
