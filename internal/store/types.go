package store

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

const (
	FieldID          = "id"
	FieldCreatedDate = "created_date"
	FieldUpdatedDate = "updated_date"

	// default ordering of list endpoints, newest first
	DefaultOrder = "-" + FieldCreatedDate
)

// a record in its persisted JSON-object form
type Document map[string]any

// equality match on top-level fields
type Criteria map[string]any

type Order struct {
	Field string
	Desc  bool
}

// parses an order spec such as "-created_date"; empty means DefaultOrder
func ParseOrder(spec string) Order {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = DefaultOrder
	}

	if strings.HasPrefix(spec, "-") {
		return Order{Field: strings.TrimPrefix(spec, "-"), Desc: true}
	}

	return Order{Field: strings.TrimPrefix(spec, "+")}
}

func (o Order) String() string {
	if o.Desc {
		return "-" + o.Field
	}

	return o.Field
}

// a find over one record kind; Limit <= 0 means unlimited
type Query struct {
	Criteria Criteria
	Order    Order
	Limit    int
}

// typed access to one record kind
type Store[T any] interface {
	List(ctx context.Context, order Order, limit int) ([]T, error)
	Filter(ctx context.Context, criteria Criteria, order Order, limit int) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, record T) (*T, error)
	Update(ctx context.Context, id string, patch Document) (*T, error)
	Delete(ctx context.Context, id string) error
	Increment(ctx context.Context, id, field string, delta int) (*T, error)
}

// document persistence shared by every record kind
type Backend interface {
	Insert(ctx context.Context, kind string, doc Document) error
	Find(ctx context.Context, kind string, q Query) ([]Document, error)
	Get(ctx context.Context, kind, id string) (Document, error)
	Replace(ctx context.Context, kind, id string, doc Document) error
	Delete(ctx context.Context, kind, id string) error
	// adds delta to a numeric field in one atomic step and stamps updated
	// as updated_date; a missing field counts as zero
	Increment(ctx context.Context, kind, id, field string, delta int, updated string) (Document, error)
	Clear(ctx context.Context, kind string) error
	Close() error
}
