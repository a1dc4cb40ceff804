package queries

import (
	"errors"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/guard"
)

var ErrGetLocationsQueryIsNotConstructed = errors.New(
	"GetLocationsQuery must be created via NewGetLocationsQuery constructor",
)

// GetLocationsQuery lists directory locations, optionally only active ones of one type.
type GetLocationsQuery struct {
	activeOnly   bool
	locationType kernel.LocationType

	guard guard.ConstructorGuard
}

// NewGetLocationsQuery does not filter by type when locationType is UnknownLocationType.
func NewGetLocationsQuery(activeOnly bool, locationType kernel.LocationType) GetLocationsQuery {
	return GetLocationsQuery{activeOnly: activeOnly, locationType: locationType, guard: guard.NewConstructorGuard()}
}

func (q GetLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationsQueryIsNotConstructed)
}

func (q GetLocationsQuery) ActiveOnly() bool {
	return q.activeOnly
}

func (q GetLocationsQuery) LocationType() kernel.LocationType {
	return q.locationType
}
