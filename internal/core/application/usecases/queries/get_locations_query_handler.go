package queries

import (
	"context"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/location"
	"transferflow/internal/core/ports"
)

type GetLocationsQueryHandler struct {
	directory ports.LocationDirectory
}

func NewGetLocationsQueryHandler(directory ports.LocationDirectory) GetLocationsQueryHandler {
	return GetLocationsQueryHandler{directory: directory}
}

func (h GetLocationsQueryHandler) Handle(ctx context.Context, query GetLocationsQuery) ([]*location.Location, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.directory.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*location.Location, 0, len(all))
	for _, l := range all {
		if query.ActiveOnly() && !l.IsActive() {
			continue
		}
		if query.LocationType() != kernel.UnknownLocationType && l.Type() != query.LocationType() {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}
