package pagination

import (
	"strconv"

	"codeberg.org/krishisakhi/server/internal/store"
	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Params holds list parameters from a request
type Params struct {
	Order store.Order
	Limit int
}

// Meta holds list metadata for a response
type Meta struct {
	Order string `json:"order"`
	Limit int    `json:"limit"`
	Count int    `json:"count"`
}

// NewMeta creates list metadata from params and the returned count
func NewMeta(params Params, count int) Meta {
	return Meta{
		Order: params.Order.String(),
		Limit: params.Limit,
		Count: count,
	}
}

// DefaultParams returns list params with defaults applied
// an empty order sorts newest first; limit is clamped to [1, maxLimit]
func DefaultParams(order string, limit, defaultLimit, maxLimit int) Params {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if order == "" {
		order = store.DefaultOrder
	}
	return Params{
		Order: store.ParseOrder(order),
		Limit: limit,
	}
}

// FromQuery reads ?order= and ?limit=; an unparseable limit falls back to the default
func FromQuery(c *gin.Context) Params {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}

	return DefaultParams(c.Query("order"), limit, DefaultLimit, MaxLimit)
}
