// Package ports defines the contracts between the transfer domain and the
// stores that back it. Both the in-memory store and postgres implement them.
package ports

import (
	"context"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
)

// ListCriteria narrows List on the store side. Stores may ignore it; callers
// re-apply the full filter.
type ListCriteria struct {
	Statuses []transfer.Status
	Types    []transfer.Type
}

// TransferReader is the read side of the transfer store.
type TransferReader interface {
	// Get returns the order with all line items, or ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*transfer.Order, error)

	// List returns orders in store order, oldest first.
	List(ctx context.Context, criteria ListCriteria) ([]*transfer.Order, error)
}

// TransferRepository persists transfer order aggregates.
type TransferRepository interface {
	TransferReader

	// Add stores a new order together with its items.
	Add(ctx context.Context, aggregate *transfer.Order) error

	// Update replaces the stored order. Line items are replaced wholesale.
	Update(ctx context.Context, aggregate *transfer.Order) error

	// Delete removes the order and its items, or returns ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.UUID) error

	// NextOrderNumber reserves the next number for orders created on the UTC day of at.
	NextOrderNumber(ctx context.Context, at time.Time) (string, error)
}
