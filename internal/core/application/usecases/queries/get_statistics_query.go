package queries

import (
	"errors"
	"time"

	"transferflow/internal/pkg/guard"
)

var ErrGetStatisticsQueryIsNotConstructed = errors.New(
	"GetStatisticsQuery must be created via NewGetStatisticsQuery constructor",
)

// GetStatisticsQuery computes dashboard statistics as of a moment; the
// current month is taken from it.
type GetStatisticsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetStatisticsQuery uses the current time when asOf is zero.
func NewGetStatisticsQuery(asOf time.Time) GetStatisticsQuery {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return GetStatisticsQuery{asOf: asOf.UTC(), guard: guard.NewConstructorGuard()}
}

func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

func (q GetStatisticsQuery) AsOf() time.Time {
	return q.asOf
}
