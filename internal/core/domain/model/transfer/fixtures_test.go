package transfer_test

import (
	"testing"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func mustSnapshot(t *testing.T, lt kernel.LocationType, code, name string) kernel.LocationSnapshot {
	t.Helper()
	s, err := kernel.NewLocationSnapshot(lt, kernel.NewUUID(), code, name, "", kernel.Contact{})
	require.NoError(t, err)
	return s
}

func mustActor(t *testing.T, id string) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, "User "+id)
	require.NoError(t, err)
	return a
}

func validData(t *testing.T) transfer.OrderData {
	t.Helper()
	return transfer.OrderData{
		Type:        transfer.WarehouseToStore,
		Priority:    transfer.Normal,
		Title:       "Weekly restock",
		From:        mustSnapshot(t, kernel.Warehouse, "WH-01", "Central Warehouse"),
		To:          mustSnapshot(t, kernel.Store, "ST-01", "Downtown Store"),
		PlannedDate: fixedNow.AddDate(0, 0, 3),
		Items: []transfer.LineItemData{
			{ProductID: "P-1", SKU: "SKU-1", ProductName: "Rice", Unit: "bag", PlannedQuantity: 10, UnitPrice: decimal.RequireFromString("5.50")},
			{ProductID: "P-2", SKU: "SKU-2", ProductName: "Oil", Unit: "bottle", PlannedQuantity: 4, UnitPrice: decimal.RequireFromString("12.25")},
		},
	}
}

func newDraft(t *testing.T) *transfer.Order {
	t.Helper()
	o, err := transfer.NewOrder(kernel.NewUUID(), "TO-20240315-0001", validData(t), mustActor(t, "u1"), fixedNow)
	require.NoError(t, err)
	return o
}

// orderIn drives a fresh order through the workflow into status.
func orderIn(t *testing.T, status transfer.Status) *transfer.Order {
	t.Helper()
	o := newDraft(t)
	actor := mustActor(t, "u2")

	path := map[transfer.Status][]transfer.Transition{
		transfer.Draft:           nil,
		transfer.PendingApproval: {{Action: transfer.Submit, Actor: actor}},
		transfer.Approved:        {{Action: transfer.Submit, Actor: actor}, {Action: transfer.Approve, Actor: actor}},
		transfer.Rejected:        {{Action: transfer.Submit, Actor: actor}, {Action: transfer.Reject, Actor: actor, Remarks: "no budget"}},
		transfer.InTransit: {
			{Action: transfer.Submit, Actor: actor}, {Action: transfer.Approve, Actor: actor},
			{Action: transfer.Start, Actor: actor},
		},
		transfer.PartialReceived: {
			{Action: transfer.Submit, Actor: actor}, {Action: transfer.Approve, Actor: actor},
			{Action: transfer.Start, Actor: actor}, {Action: transfer.Receive, Actor: actor},
		},
		transfer.Completed: {
			{Action: transfer.Submit, Actor: actor}, {Action: transfer.Approve, Actor: actor},
			{Action: transfer.Start, Actor: actor}, {Action: transfer.Complete, Actor: actor},
		},
		transfer.Cancelled: {{Action: transfer.Cancel, Actor: actor, Remarks: "duplicate"}},
	}[status]

	for _, tr := range path {
		next, _, err := transfer.Reduce(o, tr, fixedNow)
		require.NoError(t, err)
		o = next
	}
	require.Equal(t, status, o.Status())
	return o
}
