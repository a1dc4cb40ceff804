package queries

import (
	"errors"
	"strings"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/guard"
)

var ErrGetInventoryQueryIsNotConstructed = errors.New(
	"GetInventoryQuery must be created via NewGetInventoryQuery constructor",
)

// GetInventoryQuery asks for stock at one location, optionally for a single product.
type GetInventoryQuery struct {
	locationID kernel.UUID
	productID  string

	guard guard.ConstructorGuard
}

func NewGetInventoryQuery(locationID kernel.UUID, productID string) (GetInventoryQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetInventoryQuery{}, err
	}
	return GetInventoryQuery{
		locationID: locationID,
		productID:  strings.TrimSpace(productID),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryQueryIsNotConstructed)
}

func (q GetInventoryQuery) LocationID() kernel.UUID {
	return q.locationID
}

func (q GetInventoryQuery) ProductID() string {
	return q.productID
}
