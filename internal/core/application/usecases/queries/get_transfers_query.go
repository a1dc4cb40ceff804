// Package queries contains read-only operations over transfer orders and the
// location directory. Handlers read through ports so the same code serves the
// in-memory store and postgres.
package queries

import (
	"errors"

	"transferflow/internal/core/domain/services"
	"transferflow/internal/pkg/guard"
)

var ErrGetTransfersQueryIsNotConstructed = errors.New(
	"GetTransfersQuery must be created via NewGetTransfersQuery constructor",
)

// GetTransfersQuery lists transfers matching a filter, sorted and paged.
//
// Example:
//
//	query := NewGetTransfersQuery(
//	    services.Filter{Statuses: []transfer.Status{transfer.PendingApproval}},
//	    services.Sort{Field: "plannedDate", Direction: services.Asc},
//	    services.Pagination{Page: 1, PageSize: 20},
//	)
//	page, err := handler.Handle(ctx, query)
type GetTransfersQuery struct {
	filter     services.Filter
	sort       services.Sort
	pagination services.Pagination

	guard guard.ConstructorGuard
}

func NewGetTransfersQuery(filter services.Filter, sort services.Sort, pagination services.Pagination) GetTransfersQuery {
	return GetTransfersQuery{
		filter:     filter,
		sort:       sort,
		pagination: pagination.Normalize(),
		guard:      guard.NewConstructorGuard(),
	}
}

func (q GetTransfersQuery) Validate() error {
	return q.guard.Validate(ErrGetTransfersQueryIsNotConstructed)
}

func (q GetTransfersQuery) Filter() services.Filter {
	return q.filter
}

func (q GetTransfersQuery) Sort() services.Sort {
	return q.sort
}

func (q GetTransfersQuery) Pagination() services.Pagination {
	return q.pagination
}
