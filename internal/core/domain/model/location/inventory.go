package location

import "transferflow/internal/core/domain/model/kernel"

// InventorySnapshot is a point-in-time stock record for one product at one location.
// It is read from the inventory collaborator and never mutated by transfers.
type InventorySnapshot struct {
	LocationID  kernel.UUID
	ProductID   string
	SKU         string
	ProductName string
	Unit        string
	Quantity    int
	Reserved    int
}

// Available is the quantity not held by reservations; never negative.
func (s InventorySnapshot) Available() int {
	if s.Reserved >= s.Quantity {
		return 0
	}
	return s.Quantity - s.Reserved
}
