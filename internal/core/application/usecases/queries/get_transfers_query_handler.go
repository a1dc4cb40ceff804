package queries

import (
	"context"

	"transferflow/internal/core/domain/services"
	"transferflow/internal/core/ports"
)

// GetTransfersQueryHandler pushes the status and type sets down to the store
// and runs the full filter, sort and pagination over what comes back.
type GetTransfersQueryHandler struct {
	reader ports.TransferReader
	engine services.TransferQueryEngine
}

func NewGetTransfersQueryHandler(reader ports.TransferReader) GetTransfersQueryHandler {
	return GetTransfersQueryHandler{reader: reader, engine: services.NewTransferQueryEngine()}
}

func (h GetTransfersQueryHandler) Handle(ctx context.Context, query GetTransfersQuery) (services.PagedResult, error) {
	if err := query.Validate(); err != nil {
		return services.PagedResult{}, err
	}

	filter := query.Filter()
	orders, err := h.reader.List(ctx, ports.ListCriteria{
		Statuses: filter.Statuses,
		Types:    filter.Types,
	})
	if err != nil {
		return services.PagedResult{}, err
	}

	return h.engine.Query(orders, filter, query.Sort(), query.Pagination()), nil
}
