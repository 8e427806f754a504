package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// implements Store[T] for one record kind on top of a document Backend
type Collection[T any] struct {
	kind    string
	backend Backend
	now     func() time.Time
	newID   func() string
}

// creates a typed collection named kind
func NewCollection[T any](backend Backend, kind string) *Collection[T] {
	return &Collection[T]{
		kind:    kind,
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (c *Collection[T]) Kind() string {
	return c.kind
}

// returns every record in the given order
func (c *Collection[T]) List(ctx context.Context, order Order, limit int) ([]T, error) {
	return c.Filter(ctx, nil, order, limit)
}

// returns records whose fields equal every criterion
func (c *Collection[T]) Filter(ctx context.Context, criteria Criteria, order Order, limit int) ([]T, error) {
	normalized, err := normalizeCriteria(criteria)
	if err != nil {
		return nil, fmt.Errorf("invalid %s criteria: %w", c.kind, err)
	}

	if order.Field == "" {
		order = ParseOrder("")
	}

	docs, err := c.backend.Find(ctx, c.kind, Query{Criteria: normalized, Order: order, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.kind, err)
	}

	records := make([]T, 0, len(docs))
	for _, doc := range docs {
		record, err := FromDocument[T](doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s %s: %w", c.kind, doc.ID(), err)
		}

		records = append(records, *record)
	}

	return records, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.backend.Get(ctx, c.kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", c.kind, id, err)
	}

	return FromDocument[T](doc)
}

// persists a new record, assigning id and created_date when absent
func (c *Collection[T]) Create(ctx context.Context, record T) (*T, error) {
	doc, err := ToDocument(record)
	if err != nil {
		return nil, err
	}

	if id, _ := doc[FieldID].(string); id == "" {
		doc[FieldID] = c.newID()
	}

	if created, _ := doc[FieldCreatedDate].(string); created == "" {
		doc[FieldCreatedDate] = Timestamp(c.now())
	}

	if err := c.backend.Insert(ctx, c.kind, doc); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", c.kind, err)
	}

	return FromDocument[T](doc)
}

// merges patch into the stored record; id and created_date never change
func (c *Collection[T]) Update(ctx context.Context, id string, patch Document) (*T, error) {
	doc, err := c.backend.Get(ctx, c.kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", c.kind, id, err)
	}

	// round-trip the patch so values match their stored JSON form
	normalized, err := ToDocument(map[string]any(patch))
	if err != nil {
		return nil, fmt.Errorf("invalid %s patch: %w", c.kind, err)
	}

	merged := doc.clone()
	for field, value := range normalized {
		if field == FieldID || field == FieldCreatedDate {
			continue
		}

		merged[field] = value
	}

	merged[FieldUpdatedDate] = Timestamp(c.now())

	// validate the merged document still decodes as T before persisting
	record, err := FromDocument[T](merged)
	if err != nil {
		return nil, fmt.Errorf("invalid %s patch: %w", c.kind, err)
	}

	if err := c.backend.Replace(ctx, c.kind, id, merged); err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", c.kind, id, err)
	}

	return record, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, c.kind, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", c.kind, id, err)
	}

	return nil
}

// adds delta to a numeric field without a read-modify-write in the caller
func (c *Collection[T]) Increment(ctx context.Context, id, field string, delta int) (*T, error) {
	if field == "" || field == FieldID || field == FieldCreatedDate || field == FieldUpdatedDate {
		return nil, fmt.Errorf("invalid %s counter field %q", c.kind, field)
	}

	doc, err := c.backend.Increment(ctx, c.kind, id, field, delta, Timestamp(c.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to increment %s %s: %w", c.kind, id, err)
	}

	return FromDocument[T](doc)
}

// removes every record of this kind (seeding only)
func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.backend.Clear(ctx, c.kind); err != nil {
		return fmt.Errorf("failed to clear %s: %w", c.kind, err)
	}

	return nil
}
