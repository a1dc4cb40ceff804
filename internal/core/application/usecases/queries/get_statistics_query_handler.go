package queries

import (
	"context"

	"transferflow/internal/core/domain/services"
	"transferflow/internal/core/ports"
)

// GetStatisticsQueryHandler recomputes statistics from the full order set on
// every call.
type GetStatisticsQueryHandler struct {
	reader     ports.TransferReader
	aggregator services.StatisticsAggregator
}

func NewGetStatisticsQueryHandler(reader ports.TransferReader) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{reader: reader, aggregator: services.NewStatisticsAggregator()}
}

func (h GetStatisticsQueryHandler) Handle(ctx context.Context, query GetStatisticsQuery) (services.Statistics, error) {
	if err := query.Validate(); err != nil {
		return services.Statistics{}, err
	}

	orders, err := h.reader.List(ctx, ports.ListCriteria{})
	if err != nil {
		return services.Statistics{}, err
	}

	return h.aggregator.Aggregate(orders, query.AsOf()), nil
}
