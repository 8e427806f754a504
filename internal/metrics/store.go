package metrics

import (
	"context"
	"errors"

	"codeberg.org/krishisakhi/server/internal/store"
)

// counts operations through a Store[T]
type InstrumentedStore[T any] struct {
	next    store.Store[T]
	kind    string
	metrics *Metrics
}

func NewInstrumentedStore[T any](next store.Store[T], kind string, m *Metrics) *InstrumentedStore[T] {
	return &InstrumentedStore[T]{next: next, kind: kind, metrics: m}
}

func (s *InstrumentedStore[T]) List(ctx context.Context, order store.Order, limit int) ([]T, error) {
	records, err := s.next.List(ctx, order, limit)
	s.record("list", err)
	return records, err
}

func (s *InstrumentedStore[T]) Filter(ctx context.Context, criteria store.Criteria, order store.Order, limit int) ([]T, error) {
	records, err := s.next.Filter(ctx, criteria, order, limit)
	s.record("filter", err)
	return records, err
}

func (s *InstrumentedStore[T]) Get(ctx context.Context, id string) (*T, error) {
	record, err := s.next.Get(ctx, id)
	s.record("get", err)
	return record, err
}

func (s *InstrumentedStore[T]) Create(ctx context.Context, record T) (*T, error) {
	created, err := s.next.Create(ctx, record)
	s.record("create", err)
	return created, err
}

func (s *InstrumentedStore[T]) Update(ctx context.Context, id string, patch store.Document) (*T, error) {
	updated, err := s.next.Update(ctx, id, patch)
	s.record("update", err)
	return updated, err
}

func (s *InstrumentedStore[T]) Delete(ctx context.Context, id string) error {
	err := s.next.Delete(ctx, id)
	s.record("delete", err)
	return err
}

func (s *InstrumentedStore[T]) Increment(ctx context.Context, id, field string, delta int) (*T, error) {
	updated, err := s.next.Increment(ctx, id, field, delta)
	s.record("increment", err)
	return updated, err
}

func (s *InstrumentedStore[T]) record(op string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, store.ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}

	s.metrics.IncStoreOp(s.kind, op, result)
}
