package services_test

import (
	"testing"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type orderSpec struct {
	number   string
	title    string
	tp       transfer.Type
	priority transfer.Priority
	planned  time.Time
	created  time.Time
	amount   int64
	actions  []transfer.Action
	fromName string
}

func buildOrder(t *testing.T, spec orderSpec) *transfer.Order {
	t.Helper()

	if spec.tp == transfer.UnknownType {
		spec.tp = transfer.WarehouseToStore
	}
	if spec.priority == transfer.UnknownPriority {
		spec.priority = transfer.Normal
	}
	if spec.title == "" {
		spec.title = "Restock " + spec.number
	}
	if spec.fromName == "" {
		spec.fromName = "Central Warehouse"
	}
	if spec.planned.IsZero() {
		spec.planned = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	}
	if spec.created.IsZero() {
		spec.created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	if spec.amount == 0 {
		spec.amount = 100
	}

	fromType, toType := kernel.Warehouse, kernel.Store
	switch spec.tp {
	case transfer.WarehouseToWarehouse:
		toType = kernel.Warehouse
	case transfer.StoreToStore:
		fromType = kernel.Store
	case transfer.StoreToWarehouse:
		fromType, toType = kernel.Store, kernel.Warehouse
	}

	from, err := kernel.NewLocationSnapshot(fromType, kernel.NewUUID(), "F-1", spec.fromName, "", kernel.Contact{})
	require.NoError(t, err)
	to, err := kernel.NewLocationSnapshot(toType, kernel.NewUUID(), "T-1", "Destination", "", kernel.Contact{})
	require.NoError(t, err)
	actor, err := kernel.NewActor("tester", "Tester")
	require.NoError(t, err)

	o, err := transfer.NewOrder(kernel.NewUUID(), spec.number, transfer.OrderData{
		Type:        spec.tp,
		Priority:    spec.priority,
		Title:       spec.title,
		From:        from,
		To:          to,
		PlannedDate: spec.planned,
		Items: []transfer.LineItemData{
			{ProductID: "P-1", ProductName: "Goods", PlannedQuantity: 1, UnitPrice: decimal.NewFromInt(spec.amount)},
		},
	}, actor, spec.created)
	require.NoError(t, err)

	for _, a := range spec.actions {
		o, _, err = transfer.Reduce(o, transfer.Transition{Action: a, Actor: actor, Remarks: "r"}, spec.created)
		require.NoError(t, err)
	}
	return o
}
