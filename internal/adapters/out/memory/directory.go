package memory

import (
	"context"
	"slices"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/ports"
	"transferflow/internal/pkg/errs"
)

// Directory is a fixed location directory. It shares the store's simulated transport.
type Directory struct {
	store     *Store
	locations []*location.Location
}

var _ ports.LocationDirectory = (*Directory)(nil)

func NewDirectory(store *Store, locations []*location.Location) *Directory {
	return &Directory{store: store, locations: slices.Clone(locations)}
}

func (d *Directory) GetAll(ctx context.Context) ([]*location.Location, error) {
	if err := d.store.simulate(ctx, "list locations"); err != nil {
		return nil, err
	}
	return slices.Clone(d.locations), nil
}

func (d *Directory) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	if err := d.store.simulate(ctx, "get location"); err != nil {
		return nil, err
	}
	i := slices.IndexFunc(d.locations, func(l *location.Location) bool { return l.ID().IsEqual(id) })
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("location", id)
	}
	return d.locations[i], nil
}

// Inventory answers stock queries from a fixed set of snapshots.
type Inventory struct {
	store   *Store
	records []location.InventorySnapshot
}

var _ ports.InventoryReader = (*Inventory)(nil)

func NewInventory(store *Store, records []location.InventorySnapshot) *Inventory {
	return &Inventory{store: store, records: slices.Clone(records)}
}

func (inv *Inventory) ByLocation(
	ctx context.Context,
	locationID kernel.UUID,
	productID string,
) ([]location.InventorySnapshot, error) {
	if err := inv.store.simulate(ctx, "query inventory"); err != nil {
		return nil, err
	}
	result := make([]location.InventorySnapshot, 0)
	for _, r := range inv.records {
		if !r.LocationID.IsEqual(locationID) {
			continue
		}
		if productID != "" && r.ProductID != productID {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}
