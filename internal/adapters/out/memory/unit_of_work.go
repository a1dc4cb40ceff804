package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"
	"transferflow/internal/pkg/errs"
)

var (
	ErrNoActiveTransaction = errors.New("no active transaction")
	ErrTransactionIsClosed = errors.New("transaction is already closed")
)

type changeKind int

const (
	changeAdd changeKind = iota + 1
	changeUpdate
	changeDelete
)

type change struct {
	kind  changeKind
	id    kernel.UUID
	order *transfer.Order
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes until Commit. Reads through its repository see the
// staged writes on top of the store.
type UnitOfWork struct {
	store   *Store
	active  bool
	closed  bool
	staged  []change
	tracked []kernel.UUID
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.closed {
		return ErrTransactionIsClosed
	}
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	uow.closed = true

	changes := uow.staged
	uow.staged = nil
	if len(changes) == 0 {
		return nil
	}
	return uow.store.apply(ctx, changes)
}

// Rollback discards staged writes. It is a no-op once the unit is closed.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.closed {
		return nil
	}
	uow.active = false
	uow.closed = true
	uow.staged = nil
	return nil
}

func (uow *UnitOfWork) TransferRepository() ports.TransferRepository {
	return &transferRepository{uow: uow}
}

// TrackedAggregates lists ids of orders written through this unit, in write order.
func (uow *UnitOfWork) TrackedAggregates() []kernel.UUID {
	return slices.Clone(uow.tracked)
}

func (uow *UnitOfWork) stage(c change) {
	uow.tracked = append(uow.tracked, c.id)

	i := slices.IndexFunc(uow.staged, func(s change) bool { return s.id == c.id })
	if i < 0 {
		uow.staged = append(uow.staged, c)
		return
	}

	prev := uow.staged[i]
	switch {
	case prev.kind == changeAdd && c.kind == changeDelete:
		uow.staged = slices.Delete(uow.staged, i, i+1)
	case prev.kind == changeAdd:
		prev.order = c.order
		uow.staged[i] = prev
	default:
		uow.staged[i] = c
	}
}

func (uow *UnitOfWork) lookup(id kernel.UUID) (change, bool) {
	i := slices.IndexFunc(uow.staged, func(s change) bool { return s.id == id })
	if i < 0 {
		return change{}, false
	}
	return uow.staged[i], true
}

// transferRepository is bound to one UnitOfWork.
type transferRepository struct {
	uow *UnitOfWork
}

var _ ports.TransferRepository = (*transferRepository)(nil)

func (r *transferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Order, error) {
	if c, ok := r.uow.lookup(id); ok {
		if c.kind == changeDelete {
			return nil, errs.NewObjectNotFoundError("transfer", id)
		}
		if err := r.uow.store.simulate(ctx, "get transfer"); err != nil {
			return nil, err
		}
		return c.order.Clone(), nil
	}
	return r.uow.store.Get(ctx, id)
}

func (r *transferRepository) List(ctx context.Context, criteria ports.ListCriteria) ([]*transfer.Order, error) {
	stored, err := r.uow.store.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if len(r.uow.staged) == 0 {
		return stored, nil
	}

	result := make([]*transfer.Order, 0, len(stored))
	for _, o := range stored {
		c, ok := r.uow.lookup(o.ID())
		switch {
		case !ok:
			result = append(result, o)
		case c.kind == changeUpdate && matchesCriteria(c.order, criteria):
			result = append(result, c.order.Clone())
		}
	}
	for _, c := range r.uow.staged {
		if c.kind == changeAdd && matchesCriteria(c.order, criteria) {
			result = append(result, c.order.Clone())
		}
	}
	return result, nil
}

func (r *transferRepository) Add(_ context.Context, aggregate *transfer.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	r.uow.stage(change{kind: changeAdd, id: aggregate.ID(), order: aggregate.Clone()})
	return nil
}

func (r *transferRepository) Update(ctx context.Context, aggregate *transfer.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if _, err := r.Get(ctx, aggregate.ID()); err != nil {
		return err
	}
	r.uow.stage(change{kind: changeUpdate, id: aggregate.ID(), order: aggregate.Clone()})
	return nil
}

func (r *transferRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	r.uow.stage(change{kind: changeDelete, id: id})
	return nil
}

func (r *transferRepository) NextOrderNumber(ctx context.Context, at time.Time) (string, error) {
	return r.uow.store.nextNumber(ctx, at)
}
