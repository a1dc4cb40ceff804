package commands_test

import (
	"context"
	"testing"
	"time"

	"transferflow/internal/core/application/usecases/commands"
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransferRepository struct{ mock.Mock }

func (m *MockTransferRepository) Add(ctx context.Context, o *transfer.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransferRepository) Update(ctx context.Context, o *transfer.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransferRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*transfer.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransferRepository) List(ctx context.Context, c ports.ListCriteria) ([]*transfer.Order, error) {
	args := m.Called(ctx, c)
	return args.Get(0).([]*transfer.Order), args.Error(1)
}

func (m *MockTransferRepository) NextOrderNumber(ctx context.Context, at time.Time) (string, error) {
	args := m.Called(ctx, at)
	return args.String(0), args.Error(1)
}

type MockTransferUoW struct{ mock.Mock }

func (m *MockTransferUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransferUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransferUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransferUoW) TransferRepository() ports.TransferRepository {
	args := m.Called()
	return args.Get(0).(ports.TransferRepository)
}

type MockTransferUoWFactory struct{ mock.Mock }

func (m *MockTransferUoWFactory) Create() commands.TransferUoW {
	args := m.Called()
	return args.Get(0).(commands.TransferUoW)
}

type MockLocationDirectory struct{ mock.Mock }

func (m *MockLocationDirectory) GetAll(ctx context.Context) ([]*location.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*location.Location), args.Error(1)
}

func (m *MockLocationDirectory) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*location.Location), args.Error(1)
	}
	return nil, args.Error(1)
}

// happyUoW wires a unit of work that begins, commits and rolls back cleanly.
func happyUoW(repo *MockTransferRepository) (*MockTransferUoW, *MockTransferUoWFactory) {
	uow := new(MockTransferUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("TransferRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockTransferUoWFactory)
	factory.On("Create").Return(uow)
	return uow, factory
}

func mustActor(t *testing.T, id string) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, "")
	require.NoError(t, err)
	return a
}

func mustLocation(t *testing.T, lt kernel.LocationType, code string, active bool) *location.Location {
	t.Helper()
	l, err := location.NewLocation(kernel.NewUUID(), lt, code, code+" name", "", kernel.Contact{}, active)
	require.NoError(t, err)
	return l
}

func sampleItems() []transfer.LineItemData {
	return []transfer.LineItemData{
		{ProductID: "P-1", ProductName: "Rice", PlannedQuantity: 10, UnitPrice: decimal.NewFromInt(5)},
		{ProductID: "P-2", ProductName: "Oil", PlannedQuantity: 3, UnitPrice: decimal.NewFromInt(20)},
	}
}

func draftOrder(t *testing.T) *transfer.Order {
	t.Helper()
	from, err := mustLocation(t, kernel.Warehouse, "WH-1", true).Snapshot()
	require.NoError(t, err)
	to, err := mustLocation(t, kernel.Store, "ST-1", true).Snapshot()
	require.NoError(t, err)

	o, err := transfer.NewOrder(kernel.NewUUID(), "TO-20240101-0001", transfer.OrderData{
		Type:        transfer.WarehouseToStore,
		Priority:    transfer.Normal,
		Title:       "Restock",
		From:        from,
		To:          to,
		PlannedDate: time.Now().AddDate(0, 0, 2),
		Items:       sampleItems(),
	}, mustActor(t, "creator"), time.Now().UTC())
	require.NoError(t, err)
	return o
}

func advance(t *testing.T, o *transfer.Order, actions ...transfer.Action) *transfer.Order {
	t.Helper()
	for _, a := range actions {
		next, _, err := transfer.Reduce(o, transfer.Transition{Action: a, Actor: mustActor(t, "u"), Remarks: "r"}, time.Now().UTC())
		require.NoError(t, err)
		o = next
	}
	return o
}
