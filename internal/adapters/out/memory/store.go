// Package memory is a deterministic in-process store for transfer orders,
// locations and inventory. Reads return clones and writes go through units of
// work that apply on Commit. Latency and transport failures can be injected to
// exercise callers the way a remote store would.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/core/domain/model/transfer"
	"transferflow/internal/core/ports"
	"transferflow/internal/pkg/errs"
)

// ErrInjectedFailure is the cause of transport errors produced by FailEvery.
var ErrInjectedFailure = errors.New("injected failure")

// Options tune the simulated transport.
type Options struct {
	// Latency is waited before every store call; the wait honors ctx.
	Latency time.Duration
	// FailEvery makes every n-th store call fail with a TransportError; 0 disables.
	FailEvery int
}

// Store holds transfer orders in insertion order.
type Store struct {
	opts  Options
	calls atomic.Int64

	mu      sync.RWMutex
	orders  map[kernel.UUID]*transfer.Order
	order   []kernel.UUID
	numbers map[string]int
}

func NewStore(opts Options) *Store {
	return &Store{
		opts:    opts,
		orders:  make(map[kernel.UUID]*transfer.Order),
		numbers: make(map[string]int),
	}
}

// simulate applies the configured latency and failure injection to one call.
func (s *Store) simulate(ctx context.Context, op string) error {
	if s.opts.Latency > 0 {
		timer := time.NewTimer(s.opts.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return errs.NewTransportError(op, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return errs.NewTransportError(op, err)
	}

	n := s.calls.Add(1)
	if s.opts.FailEvery > 0 && n%int64(s.opts.FailEvery) == 0 {
		return errs.NewTransportError(op, ErrInjectedFailure)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id kernel.UUID) (*transfer.Order, error) {
	if err := s.simulate(ctx, "get transfer"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("transfer", id)
	}
	return o.Clone(), nil
}

func (s *Store) List(ctx context.Context, criteria ports.ListCriteria) ([]*transfer.Order, error) {
	if err := s.simulate(ctx, "list transfers"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*transfer.Order, 0, len(s.order))
	for _, id := range s.order {
		o := s.orders[id]
		if matchesCriteria(o, criteria) {
			result = append(result, o.Clone())
		}
	}
	return result, nil
}

// Len returns the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// nextNumber reserves a number outside any unit of work, like a database sequence.
func (s *Store) nextNumber(ctx context.Context, at time.Time) (string, error) {
	if err := s.simulate(ctx, "next order number"); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	day := transfer.NumberDay(at)
	s.numbers[day]++
	return transfer.FormatNumber(at, s.numbers[day]), nil
}

// apply commits staged changes atomically. A missing update or delete target
// fails the whole commit and nothing is applied.
func (s *Store) apply(ctx context.Context, changes []change) error {
	if err := s.simulate(ctx, "commit"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range changes {
		_, exists := s.orders[c.id]
		switch {
		case c.kind == changeAdd && exists:
			return errs.NewValueIsInvalidErrorWithCause("transfer id", fmt.Errorf("%s already exists", c.id))
		case c.kind != changeAdd && !exists:
			return errs.NewObjectNotFoundError("transfer", c.id)
		}
	}

	for _, c := range changes {
		switch c.kind {
		case changeAdd:
			s.orders[c.id] = c.order
			s.order = append(s.order, c.id)
		case changeUpdate:
			s.orders[c.id] = c.order
		case changeDelete:
			delete(s.orders, c.id)
			s.order = slices.DeleteFunc(s.order, func(id kernel.UUID) bool { return id == c.id })
		}
	}
	return nil
}

func matchesCriteria(o *transfer.Order, c ports.ListCriteria) bool {
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, o.Status()) {
		return false
	}
	if len(c.Types) > 0 && !slices.Contains(c.Types, o.Type()) {
		return false
	}
	return true
}
