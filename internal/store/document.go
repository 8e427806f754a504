package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// fixed-width UTC layout so timestamps sort lexically
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// converts a typed record to its document form
func ToDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("record is not a JSON object: %w", err)
	}

	return doc, nil
}

// converts a document back into a typed record
func FromDocument[T any](doc Document) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return &v, nil
}

// builds a patch from an update request; nil pointers and omitempty
// fields are left out so only supplied fields change
func PatchFrom(v any) (Document, error) {
	return ToDocument(v)
}

// normalizes criteria values into their JSON form so they compare equal to
// stored documents (e.g. ints become float64)
func normalizeCriteria(c Criteria) (Criteria, error) {
	if len(c) == 0 {
		return nil, nil
	}

	doc, err := ToDocument(map[string]any(c))
	if err != nil {
		return nil, err
	}

	return Criteria(doc), nil
}

func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// returns a copy of d with delta added to field and updated_date set
func addToField(d Document, field string, delta int, updated string) (Document, error) {
	var current float64
	switch v := d[field].(type) {
	case nil:
	case float64:
		current = v
	case int:
		current = float64(v)
	case int64:
		current = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("field %q is not numeric: %w", field, err)
		}
		current = f
	default:
		return nil, fmt.Errorf("field %q is not numeric", field)
	}

	next := d.clone()
	next[field] = current + float64(delta)
	next[FieldUpdatedDate] = updated
	return next, nil
}

func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}

	return out
}

// reports whether every criterion equals the document's field
func (d Document) matches(c Criteria) bool {
	for field, want := range c {
		got, ok := d[field]
		if !ok || !equalValues(got, want) {
			return false
		}
	}

	return true
}

func equalValues(a, b any) bool {
	ra, errA := json.Marshal(a)
	rb, errB := json.Marshal(b)

	return errA == nil && errB == nil && string(ra) == string(rb)
}

// filters, sorts and limits documents in process; used by backends
// without native query support
func applyQuery(docs []Document, q Query) []Document {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if doc.matches(q.Criteria) {
			out = append(out, doc)
		}
	}

	field := q.Order.Field
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i][field], out[j][field]

		// missing values go last in either direction
		if (a == nil) != (b == nil) {
			return b == nil
		}

		c := compareValues(a, b)
		if c == 0 {
			c = strings.Compare(out[i].ID(), out[j].ID())
			return c < 0
		}

		if q.Order.Desc {
			return c > 0
		}

		return c < 0
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}

	return out
}

// orders numbers numerically, strings lexically, false before true
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
