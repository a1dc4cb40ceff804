package queries

import (
	"context"

	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/ports"
)

// GetInventoryQueryHandler checks the location exists before asking the
// inventory source, so an unknown location is NotFound rather than empty stock.
type GetInventoryQueryHandler struct {
	directory ports.LocationDirectory
	inventory ports.InventoryReader
}

func NewGetInventoryQueryHandler(directory ports.LocationDirectory, inventory ports.InventoryReader) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{directory: directory, inventory: inventory}
}

func (h GetInventoryQueryHandler) Handle(ctx context.Context, query GetInventoryQuery) ([]location.InventorySnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.directory.Get(ctx, query.LocationID()); err != nil {
		return nil, err
	}

	return h.inventory.ByLocation(ctx, query.LocationID(), query.ProductID())
}
