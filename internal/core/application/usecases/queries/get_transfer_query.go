package queries

import (
	"errors"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/guard"
)

var ErrGetTransferQueryIsNotConstructed = errors.New(
	"GetTransferQuery must be created via NewGetTransferQuery constructor",
)

// GetTransferQuery fetches one order with its line items.
type GetTransferQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTransferQuery(id kernel.UUID) (GetTransferQuery, error) {
	if err := id.Validate(); err != nil {
		return GetTransferQuery{}, err
	}
	return GetTransferQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTransferQuery) Validate() error {
	return q.guard.Validate(ErrGetTransferQueryIsNotConstructed)
}

func (q GetTransferQuery) ID() kernel.UUID {
	return q.id
}
