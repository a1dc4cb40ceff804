package transfer_test

import (
	"testing"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("should create a draft order with computed totals", func(t *testing.T) {
		data := validData(t)
		data.Items = []transfer.LineItemData{
			{ProductID: "P-1", ProductName: "Rice", PlannedQuantity: 10, UnitPrice: decimal.NewFromInt(5)},
			{ProductID: "P-2", ProductName: "Oil", PlannedQuantity: 3, UnitPrice: decimal.NewFromInt(20)},
		}
		creator := mustActor(t, "u1")

		o, err := transfer.NewOrder(kernel.NewUUID(), "TO-20240315-0001", data, creator, fixedNow)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, transfer.Draft, o.Status())
		assert.True(t, decimal.NewFromInt(110).Equal(o.TotalAmount()), o.TotalAmount().String())
		assert.Len(t, o.Items(), 2)
		assert.True(t, decimal.NewFromInt(60).Equal(o.Items()[1].TotalPrice()))
		assert.Equal(t, creator.ID(), o.CreatedBy().ID())
		assert.Equal(t, fixedNow, o.CreatedAt())
		assert.Equal(t, fixedNow, o.UpdatedAt())
		assert.Nil(t, o.Applicant())
		assert.Nil(t, o.Approver())
		assert.Nil(t, o.Operator())
		assert.Nil(t, o.ActualShipDate())
		for _, item := range o.Items() {
			assert.True(t, item.OrderID().IsEqual(o.ID()))
			assert.Nil(t, item.ActualQuantity())
			assert.Nil(t, item.ReceivedQuantity())
		}
	})

	t.Run("should join every validation error", func(t *testing.T) {
		data := validData(t)
		data.Title = "  "
		data.Priority = transfer.UnknownPriority
		data.Items = nil

		o, err := transfer.NewOrder(kernel.NewUUID(), "", data, mustActor(t, "u1"), fixedNow)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order number")
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "priority is invalid")
		assert.Contains(t, err.Error(), "items")
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("should reject identical endpoints", func(t *testing.T) {
		data := validData(t)
		data.Type = transfer.Emergency
		data.To = data.From

		_, err := transfer.NewOrder(kernel.NewUUID(), "TO-1", data, mustActor(t, "u1"), fixedNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "locations are invalid")
	})

	t.Run("should reject endpoints that do not match the type", func(t *testing.T) {
		data := validData(t)
		data.Type = transfer.StoreToStore

		_, err := transfer.NewOrder(kernel.NewUUID(), "TO-1", data, mustActor(t, "u1"), fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject invalid line items", func(t *testing.T) {
		data := validData(t)
		data.Items = []transfer.LineItemData{
			{ProductID: "P-1", ProductName: "Rice", PlannedQuantity: 0, UnitPrice: decimal.NewFromInt(1)},
			{ProductID: "P-2", ProductName: "Oil", PlannedQuantity: 1, UnitPrice: decimal.NewFromInt(-1)},
		}

		_, err := transfer.NewOrder(kernel.NewUUID(), "TO-1", data, mustActor(t, "u1"), fixedNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 1")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
		assert.Contains(t, err.Error(), "item 2")
		assert.Contains(t, err.Error(), "-1 is negative")
	})
}

func TestOrder_Update(t *testing.T) {
	t.Run("should replace items wholesale and recompute the total", func(t *testing.T) {
		o := newDraft(t)
		oldItems := o.Items()
		title := "Urgent restock"
		items := []transfer.LineItemData{
			{ProductID: "P-9", ProductName: "Salt", PlannedQuantity: 7, UnitPrice: decimal.RequireFromString("1.10")},
		}
		later := fixedNow.Add(time.Hour)

		err := o.Update(transfer.OrderPatch{Title: &title, Items: &items}, mustActor(t, "u9"), later)

		require.NoError(t, err)
		assert.Equal(t, title, o.Title())
		require.Len(t, o.Items(), 1)
		assert.False(t, o.Items()[0].ID().IsEqual(oldItems[0].ID()))
		assert.True(t, decimal.RequireFromString("7.70").Equal(o.TotalAmount()))
		assert.Equal(t, "u9", o.UpdatedBy().ID())
		assert.Equal(t, later, o.UpdatedAt())
		assert.Equal(t, fixedNow, o.CreatedAt())
	})

	t.Run("should keep the order untouched when the patch is invalid", func(t *testing.T) {
		o := newDraft(t)
		before := o.State()
		title := "New"
		empty := []transfer.LineItemData{}

		err := o.Update(transfer.OrderPatch{Title: &title, Items: &empty}, mustActor(t, "u9"), fixedNow)

		require.Error(t, err)
		assert.Equal(t, before, o.State())
	})

	t.Run("should validate endpoints against a changed type", func(t *testing.T) {
		o := newDraft(t)
		tp := transfer.StoreToWarehouse

		err := o.Update(transfer.OrderPatch{Type: &tp}, mustActor(t, "u9"), fixedNow)

		require.Error(t, err)
		assert.Equal(t, transfer.WarehouseToStore, o.Type())
	})

	t.Run("should refuse edits outside draft", func(t *testing.T) {
		o := orderIn(t, transfer.PendingApproval)
		title := "Late edit"

		err := o.Update(transfer.OrderPatch{Title: &title}, mustActor(t, "u9"), fixedNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestOrder_Clone(t *testing.T) {
	o := orderIn(t, transfer.InTransit)
	c := o.Clone()

	receipt, err := transfer.NewItemReceipt(o.Items()[0].ID(), 3)
	require.NoError(t, err)
	_, err = c.Complete(mustActor(t, "u3"), []transfer.ItemReceipt{receipt}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, transfer.InTransit, o.Status())
	assert.Nil(t, o.Items()[0].ActualQuantity())
	assert.Nil(t, o.ActualReceiveDate())
	assert.Equal(t, transfer.Completed, c.Status())
}

func TestRestore(t *testing.T) {
	t.Run("should round-trip through State", func(t *testing.T) {
		o := orderIn(t, transfer.Completed)

		restored, err := transfer.Restore(o.State())

		require.NoError(t, err)
		assert.Equal(t, o.State(), restored.State())
		assert.Equal(t, o.Approver().ActorID(), restored.Approver().ActorID())
	})

	t.Run("should recompute totals instead of trusting storage", func(t *testing.T) {
		st := newDraft(t).State()
		st.Items[0].Data.PlannedQuantity = 1

		restored, err := transfer.Restore(st)

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("54.50").Equal(restored.TotalAmount()), restored.TotalAmount().String())
	})

	t.Run("should fail on corrupted state", func(t *testing.T) {
		st := newDraft(t).State()
		st.Status = transfer.UnknownStatus
		st.CreatedByID = ""

		_, err := transfer.Restore(st)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "actor id")
	})
}

func TestNewItemReceipt(t *testing.T) {
	_, err := transfer.NewItemReceipt(kernel.NewUUID(), -1)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = transfer.NewItemReceipt(kernel.UUID{}, 1)
	require.Error(t, err)

	r, err := transfer.NewItemReceipt(kernel.NewUUID(), 0)
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	require.Error(t, transfer.ItemReceipt{}.Validate())
}

func TestLineItem_Change(t *testing.T) {
	item, err := transfer.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), transfer.LineItemData{
		ProductID: "P-1", ProductName: "Rice", PlannedQuantity: 2, UnitPrice: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(item.TotalPrice()))

	require.NoError(t, item.ChangePlannedQuantity(5))
	assert.True(t, decimal.NewFromInt(15).Equal(item.TotalPrice()))

	require.NoError(t, item.ChangeUnitPrice(decimal.RequireFromString("0.5")))
	assert.True(t, decimal.RequireFromString("2.5").Equal(item.TotalPrice()))

	require.Error(t, item.ChangePlannedQuantity(-1))
	require.Error(t, item.ChangeUnitPrice(decimal.NewFromInt(-2)))
	assert.True(t, decimal.RequireFromString("2.5").Equal(item.TotalPrice()))
}

func TestFormatNumber(t *testing.T) {
	at := time.Date(2024, 1, 5, 23, 30, 0, 0, time.FixedZone("X", -2*3600))

	assert.Equal(t, "TO-20240106-0007", transfer.FormatNumber(at, 7))
	assert.Equal(t, "TO-20240106-12345", transfer.FormatNumber(at, 12345))
}
