package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"transferflow/internal/core/application/usecases/queries"
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/domain/services"
	"transferflow/internal/core/ports"
	"transferflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransferReader struct{ mock.Mock }

func (m *MockTransferReader) Get(ctx context.Context, id kernel.UUID) (*transfer.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*transfer.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransferReader) List(ctx context.Context, c ports.ListCriteria) ([]*transfer.Order, error) {
	args := m.Called(ctx, c)
	if o := args.Get(0); o != nil {
		return o.([]*transfer.Order), args.Error(1)
	}
	return nil, args.Error(1)
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

type MockInventoryReader struct{ mock.Mock }

func (m *MockInventoryReader) ByLocation(ctx context.Context, id kernel.UUID, productID string) ([]location.InventorySnapshot, error) {
	args := m.Called(ctx, id, productID)
	return args.Get(0).([]location.InventorySnapshot), args.Error(1)
}

func newLocation(t *testing.T, lt kernel.LocationType, code string, active bool) *location.Location {
	t.Helper()
	l, err := location.NewLocation(kernel.NewUUID(), lt, code, code, "", kernel.Contact{}, active)
	require.NoError(t, err)
	return l
}

func newOrder(t *testing.T, number string, amount int64) *transfer.Order {
	t.Helper()
	from, err := newLocation(t, kernel.Warehouse, "WH", true).Snapshot()
	require.NoError(t, err)
	to, err := newLocation(t, kernel.Store, "ST", true).Snapshot()
	require.NoError(t, err)
	actor, err := kernel.NewActor("u", "")
	require.NoError(t, err)

	o, err := transfer.NewOrder(kernel.NewUUID(), number, transfer.OrderData{
		Type: transfer.WarehouseToStore, Priority: transfer.Normal, Title: "T " + number,
		From: from, To: to, PlannedDate: time.Now(),
		Items: []transfer.LineItemData{{ProductID: "P", ProductName: "P", PlannedQuantity: 1, UnitPrice: decimal.NewFromInt(amount)}},
	}, actor, time.Now())
	require.NoError(t, err)
	return o
}

func TestGetTransfersQueryHandler_Handle(t *testing.T) {
	orders := []*transfer.Order{newOrder(t, "TO-2", 20), newOrder(t, "TO-1", 10), newOrder(t, "TO-3", 30)}
	filter := services.Filter{Statuses: []transfer.Status{transfer.Draft}, Search: "to-"}

	reader := new(MockTransferReader)
	reader.On("List", mock.Anything, ports.ListCriteria{Statuses: filter.Statuses}).Return(orders, nil).Once()

	query := queries.NewGetTransfersQuery(filter,
		services.Sort{Field: "orderNumber", Direction: services.Asc},
		services.Pagination{Page: 1, PageSize: 2})
	page, err := queries.NewGetTransfersQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "TO-1", page.Items[0].Number())
	assert.Equal(t, "TO-2", page.Items[1].Number())
	reader.AssertExpectations(t)
}

func TestGetTransfersQueryHandler_Handle_Errors(t *testing.T) {
	reader := new(MockTransferReader)
	reader.On("List", mock.Anything, mock.Anything).Return(nil, errs.NewTransportError("list", errors.New("down")))
	h := queries.NewGetTransfersQueryHandler(reader)

	_, err := h.Handle(t.Context(), queries.NewGetTransfersQuery(services.Filter{}, services.Sort{}, services.Pagination{}))
	require.ErrorIs(t, err, errs.ErrTransport)

	_, err = h.Handle(t.Context(), queries.GetTransfersQuery{})
	require.ErrorIs(t, err, queries.ErrGetTransfersQueryIsNotConstructed)
}

func TestGetTransfersQuery_NormalizesPagination(t *testing.T) {
	q := queries.NewGetTransfersQuery(services.Filter{}, services.Sort{}, services.Pagination{PageSize: 1000})
	assert.Equal(t, services.Pagination{Page: 1, PageSize: 100}, q.Pagination())
}

func TestGetTransferQueryHandler_Handle(t *testing.T) {
	o := newOrder(t, "TO-1", 5)
	missing := kernel.NewUUID()
	reader := new(MockTransferReader)
	reader.On("Get", mock.Anything, o.ID()).Return(o, nil)
	reader.On("Get", mock.Anything, missing).Return(nil, errs.NewObjectNotFoundError("transfer", missing))
	h := queries.NewGetTransferQueryHandler(reader)

	q, err := queries.NewGetTransferQuery(o.ID())
	require.NoError(t, err)
	got, err := h.Handle(t.Context(), q)
	require.NoError(t, err)
	assert.Equal(t, "TO-1", got.Number())

	q, err = queries.NewGetTransferQuery(missing)
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = queries.NewGetTransferQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetStatisticsQueryHandler_Handle(t *testing.T) {
	reader := new(MockTransferReader)
	reader.On("List", mock.Anything, ports.ListCriteria{}).
		Return([]*transfer.Order{newOrder(t, "A", 10), newOrder(t, "B", 30)}, nil)

	stats, err := queries.NewGetStatisticsQueryHandler(reader).Handle(t.Context(), queries.NewGetStatisticsQuery(time.Time{}))

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTransfers)
	assert.Equal(t, 2, stats.ByStatus[transfer.Draft])
	assert.Equal(t, "20", stats.AverageAmount.String())
	assert.True(t, decimal.NewFromInt(40).Equal(stats.CurrentMonthAmount))
}

func TestGetLocationsQueryHandler_Handle(t *testing.T) {
	wh := newLocation(t, kernel.Warehouse, "WH-1", true)
	st := newLocation(t, kernel.Store, "ST-1", true)
	old := newLocation(t, kernel.Store, "ST-OLD", false)
	dir := new(MockLocationDirectory)
	dir.On("GetAll", mock.Anything).Return([]*location.Location{wh, st, old}, nil)
	h := queries.NewGetLocationsQueryHandler(dir)

	all, err := h.Handle(t.Context(), queries.NewGetLocationsQuery(false, kernel.UnknownLocationType))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	stores, err := h.Handle(t.Context(), queries.NewGetLocationsQuery(true, kernel.Store))
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "ST-1", stores[0].Code())
}

func TestGetInventoryQueryHandler_Handle(t *testing.T) {
	wh := newLocation(t, kernel.Warehouse, "WH-1", true)
	missing := kernel.NewUUID()
	dir := new(MockLocationDirectory)
	dir.On("Get", mock.Anything, wh.ID()).Return(wh, nil)
	dir.On("Get", mock.Anything, missing).Return(nil, errs.NewObjectNotFoundError("location", missing))
	inv := new(MockInventoryReader)
	inv.On("ByLocation", mock.Anything, wh.ID(), "P-1").Return([]location.InventorySnapshot{
		{LocationID: wh.ID(), ProductID: "P-1", Quantity: 10, Reserved: 4},
	}, nil).Once()
	h := queries.NewGetInventoryQueryHandler(dir, inv)

	q, err := queries.NewGetInventoryQuery(wh.ID(), " P-1 ")
	require.NoError(t, err)
	stock, err := h.Handle(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, 6, stock[0].Available())

	q, err = queries.NewGetInventoryQuery(missing, "")
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	inv.AssertExpectations(t)
}
