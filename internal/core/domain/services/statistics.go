package services

import (
	"time"

	"transferflow/internal/core/domain/model/transfer"

	"github.com/shopspring/decimal"
)

// Statistics is a summary derived from the full set of transfer orders.
// It is recomputed on every request and never stored.
type Statistics struct {
	TotalTransfers     int
	ByStatus           map[transfer.Status]int
	ByType             map[transfer.Type]int
	PendingApproval    int
	InTransit          int
	TotalAmount        decimal.Decimal
	CurrentMonthAmount decimal.Decimal
	AverageAmount      decimal.Decimal
}

// StatisticsAggregator computes Statistics over a collection of orders.
//
// Business rules:
//   - every status and type key is present, with zero for unused ones
//   - the sum of ByStatus equals TotalTransfers
//   - the current month is the UTC calendar month of now, matched on creation time
//   - AverageAmount is zero for an empty collection and rounded to 2 places otherwise
type StatisticsAggregator struct{}

func NewStatisticsAggregator() StatisticsAggregator {
	return StatisticsAggregator{}
}

func (StatisticsAggregator) Aggregate(orders []*transfer.Order, now time.Time) Statistics {
	stats := Statistics{
		ByStatus:           make(map[transfer.Status]int, len(transfer.AllStatuses())),
		ByType:             make(map[transfer.Type]int, len(transfer.AllTypes())),
		TotalAmount:        decimal.Zero,
		CurrentMonthAmount: decimal.Zero,
		AverageAmount:      decimal.Zero,
	}
	for _, s := range transfer.AllStatuses() {
		stats.ByStatus[s] = 0
	}
	for _, t := range transfer.AllTypes() {
		stats.ByType[t] = 0
	}

	now = now.UTC()
	for _, o := range orders {
		if o == nil {
			continue
		}
		stats.TotalTransfers++
		stats.ByStatus[o.Status()]++
		stats.ByType[o.Type()]++
		stats.TotalAmount = stats.TotalAmount.Add(o.TotalAmount())

		created := o.CreatedAt().UTC()
		if created.Year() == now.Year() && created.Month() == now.Month() {
			stats.CurrentMonthAmount = stats.CurrentMonthAmount.Add(o.TotalAmount())
		}
	}

	stats.PendingApproval = stats.ByStatus[transfer.PendingApproval]
	stats.InTransit = stats.ByStatus[transfer.InTransit]
	if stats.TotalTransfers > 0 {
		stats.AverageAmount = stats.TotalAmount.
			Div(decimal.NewFromInt(int64(stats.TotalTransfers))).
			Round(2)
	}
	return stats
}
