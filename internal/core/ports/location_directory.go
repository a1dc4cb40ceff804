package ports

import (
	"context"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
)

// LocationDirectory is the read-only source of warehouses and stores.
type LocationDirectory interface {
	GetAll(ctx context.Context) ([]*location.Location, error)

	// Get returns ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*location.Location, error)
}

// InventoryReader answers stock questions for a location.
type InventoryReader interface {
	// ByLocation lists stock at the location; an empty productID lists every product.
	ByLocation(ctx context.Context, locationID kernel.UUID, productID string) ([]location.InventorySnapshot, error)
}
