package memory

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/domain/model/transfer"

	"github.com/shopspring/decimal"
)

// Fixtures is a reproducible data set for the memory store.
type Fixtures struct {
	Locations []*location.Location
	Inventory []location.InventorySnapshot
	Orders    []*transfer.Order
}

type product struct {
	id, sku, name, spec, unit string
	price                     string
}

var catalog = []product{
	{"P-1001", "SKU-COLA-330", "Cola 330ml", "24 x 330ml", "case", "18.40"},
	{"P-1002", "SKU-WATER-500", "Still Water 500ml", "24 x 500ml", "case", "9.60"},
	{"P-1003", "SKU-CHIPS-150", "Salted Chips 150g", "12 x 150g", "case", "21.00"},
	{"P-1004", "SKU-CUP-16", "Paper Cup 16oz", "1000 pcs", "carton", "45.50"},
	{"P-1005", "SKU-NAPKIN", "Napkins", "20 x 100 pcs", "carton", "12.75"},
	{"P-1006", "SKU-SYRUP-VAN", "Vanilla Syrup 1L", "6 x 1L", "case", "54.00"},
}

var locationSeeds = []struct {
	kind    kernel.LocationType
	code    string
	name    string
	address string
	contact kernel.Contact
	active  bool
}{
	{kernel.Warehouse, "WH-N", "North Distribution Center", "1 Freight Rd", kernel.Contact{Name: "Ola Berg", Phone: "555-0101"}, true},
	{kernel.Warehouse, "WH-S", "South Depot", "77 Harbor Ave", kernel.Contact{Name: "Ken Ito", Phone: "555-0102"}, true},
	{kernel.Store, "ST-01", "Arena Main Concourse", "Gate A", kernel.Contact{Name: "Mia Lund", Phone: "555-0201"}, true},
	{kernel.Store, "ST-02", "Riverside Kiosk", "Quay 3", kernel.Contact{Name: "Sam Reyes", Phone: "555-0202"}, true},
	{kernel.Store, "ST-03", "East Stand Bar", "Section 114", kernel.Contact{Name: "Ana Costa", Phone: "555-0203"}, true},
	{kernel.Store, "ST-99", "Closed Pop-up", "Lot 9", kernel.Contact{Name: "Lee Park"}, false},
}

// GenerateFixtures builds locations, inventory and orderCount orders. The same
// seed and now always produce the same data.
func GenerateFixtures(seed uint64, orderCount int, now time.Time) (Fixtures, error) {
	g := &generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	now = now.UTC()

	var fx Fixtures
	for _, ls := range locationSeeds {
		l, err := location.NewLocation(g.uuid(), ls.kind, ls.code, ls.name, ls.address, ls.contact, ls.active)
		if err != nil {
			return Fixtures{}, err
		}
		fx.Locations = append(fx.Locations, l)
	}

	for _, l := range fx.Locations {
		for _, p := range catalog {
			qty := 20 + g.rnd.IntN(480)
			fx.Inventory = append(fx.Inventory, location.InventorySnapshot{
				LocationID:  l.ID(),
				ProductID:   p.id,
				SKU:         p.sku,
				ProductName: p.name,
				Unit:        p.unit,
				Quantity:    qty,
				Reserved:    g.rnd.IntN(qty / 4),
			})
		}
	}

	actors := []kernel.Actor{}
	for _, a := range [][2]string{{"u-100", "Jordan Blake"}, {"u-200", "Riley Chen"}, {"u-300", "Casey Novak"}} {
		actor, err := kernel.NewActor(a[0], a[1])
		if err != nil {
			return Fixtures{}, err
		}
		actors = append(actors, actor)
	}

	perDay := map[string]int{}
	for i := range orderCount {
		created := now.Add(-time.Duration(g.rnd.IntN(60*24)) * time.Hour).Truncate(time.Minute)
		day := transfer.NumberDay(created)
		perDay[day]++

		o, err := g.order(fx.Locations, actors, transfer.FormatNumber(created, perDay[day]), created, i)
		if err != nil {
			return Fixtures{}, fmt.Errorf("fixture order %d: %w", i, err)
		}
		fx.Orders = append(fx.Orders, o)
	}
	return fx, nil
}

// Seed loads fixture orders into the store and returns a directory and an
// inventory over the fixture locations.
func Seed(store *Store, fx Fixtures) (*Directory, *Inventory, error) {
	if err := store.Load(fx.Orders); err != nil {
		return nil, nil, err
	}
	return NewDirectory(store, fx.Locations), NewInventory(store, fx.Inventory), nil
}

// Load inserts orders directly, bypassing units of work, and advances the
// per-day number sequences past the loaded numbers.
func (s *Store) Load(orders []*transfer.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if _, exists := s.orders[o.ID()]; exists {
			return fmt.Errorf("load transfer %s: duplicate id", o.ID())
		}
		s.orders[o.ID()] = o.Clone()
		s.order = append(s.order, o.ID())

		if day, seq, ok := parseNumber(o.Number()); ok && seq > s.numbers[day] {
			s.numbers[day] = seq
		}
	}
	return nil
}

func parseNumber(number string) (string, int, bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != transfer.NumberPrefix {
		return "", 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, false
	}
	return parts[1], seq, true
}

type generator struct {
	rnd *rand.Rand
}

func (g *generator) uuid() kernel.UUID {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], g.rnd.Uint64())
	binary.BigEndian.PutUint64(b[8:], g.rnd.Uint64())
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id, err := kernel.UUIDFromBytes(b[:])
	if err != nil {
		return kernel.NewUUID()
	}
	return id
}

func (g *generator) pick(locations []*location.Location, kind kernel.LocationType, except kernel.UUID) *location.Location {
	candidates := make([]*location.Location, 0, len(locations))
	for _, l := range locations {
		if l.IsActive() && l.Type() == kind && !l.ID().IsEqual(except) {
			candidates = append(candidates, l)
		}
	}
	return candidates[g.rnd.IntN(len(candidates))]
}

func (g *generator) order(
	locations []*location.Location,
	actors []kernel.Actor,
	number string,
	created time.Time,
	index int,
) (*transfer.Order, error) {
	types := transfer.AllTypes()
	tp := types[g.rnd.IntN(len(types))]

	fromKind, toKind := kernel.Warehouse, kernel.Store
	switch tp {
	case transfer.WarehouseToWarehouse:
		toKind = kernel.Warehouse
	case transfer.StoreToStore:
		fromKind = kernel.Store
	case transfer.StoreToWarehouse:
		fromKind, toKind = kernel.Store, kernel.Warehouse
	}
	from := g.pick(locations, fromKind, kernel.UUID{})
	to := g.pick(locations, toKind, from.ID())

	fromSnap, err := from.Snapshot()
	if err != nil {
		return nil, err
	}
	toSnap, err := to.Snapshot()
	if err != nil {
		return nil, err
	}

	priorities := transfer.AllPriorities()
	data := transfer.OrderData{
		Type:        tp,
		Priority:    priorities[g.rnd.IntN(len(priorities))],
		Title:       fmt.Sprintf("Restock %s #%d", to.Name(), index+1),
		From:        fromSnap,
		To:          toSnap,
		PlannedDate: created.Add(time.Duration(1+g.rnd.IntN(14)) * 24 * time.Hour).Truncate(24 * time.Hour),
		Carrier:     []string{"", "CityFreight", "QuickHaul"}[g.rnd.IntN(3)],
	}

	for _, i := range g.rnd.Perm(len(catalog))[:1+g.rnd.IntN(3)] {
		p := catalog[i]
		data.Items = append(data.Items, transfer.LineItemData{
			ProductID:       p.id,
			SKU:             p.sku,
			ProductName:     p.name,
			Specification:   p.spec,
			Unit:            p.unit,
			PlannedQuantity: 1 + g.rnd.IntN(40),
			UnitPrice:       decimal.RequireFromString(p.price),
		})
	}

	creator := actors[g.rnd.IntN(len(actors))]
	o, err := transfer.NewOrder(g.uuid(), number, data, creator, created)
	if err != nil {
		return nil, err
	}
	if err := g.advance(o, actors, created); err != nil {
		return nil, err
	}

	// line item ids come from the domain's random source; swap in seeded ones
	st := o.State()
	for i := range st.Items {
		st.Items[i].ID = g.uuid()
	}
	return transfer.Restore(st)
}

// advance walks o along a random workflow path so the fixture set covers every status.
func (g *generator) advance(o *transfer.Order, actors []kernel.Actor, at time.Time) error {
	actor := func() kernel.Actor { return actors[g.rnd.IntN(len(actors))] }
	step := func() time.Time {
		at = at.Add(time.Duration(1+g.rnd.IntN(12)) * time.Hour)
		return at
	}

	path := g.rnd.IntN(8)
	if path == 0 {
		return nil
	}
	if _, err := o.Submit(actor(), step()); err != nil {
		return err
	}
	switch path {
	case 1:
		return nil
	case 2:
		_, err := o.Reject(actor(), "Budget exceeded", step())
		return err
	case 3:
		_, err := o.Cancel(actor(), "Duplicate request", step())
		return err
	}

	if _, err := o.Approve(actor(), "", step()); err != nil {
		return err
	}
	if path == 4 {
		return nil
	}
	if _, err := o.Start(actor(), fmt.Sprintf("TRK%06d", g.rnd.IntN(1_000_000)), step()); err != nil {
		return err
	}
	if path == 5 {
		return nil
	}

	items := o.Items()
	receipts := make([]transfer.ItemReceipt, 0, len(items))
	for _, item := range items {
		r, err := transfer.NewItemReceipt(item.ID(), item.PlannedQuantity()-g.rnd.IntN(2))
		if err != nil {
			return err
		}
		receipts = append(receipts, r)
	}
	if path == 6 {
		_, err := o.Receive(actor(), receipts[:1], step())
		return err
	}
	_, err := o.Complete(actor(), receipts, step())
	return err
}
