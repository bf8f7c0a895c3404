// Package items holds the Item entity and the storage contract shared by
// the database dialects and the HTTP layer.
package items

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("item not found")

// RecentLimit is how many items the index page shows.
const RecentLimit = 10

// Price is a fixed-point amount encoded as a JSON number. Decoding accepts
// numbers and quoted strings.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price { return Price{Decimal: d} }

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     Price     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is implemented by every database dialect. Each method issues a
// single statement; Update and Delete report ErrNotFound from the affected
// row count alone.
type Store interface {
	// List returns items newest first. A limit <= 0 returns all rows.
	List(ctx context.Context, limit int) ([]Item, error)
	Get(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, name string, price decimal.Decimal) (int64, error)
	Update(ctx context.Context, id int64, name string, price decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
	Close()
}
