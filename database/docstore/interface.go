// Package docstore abstracts the queryable collection store (users,
// providers, services, bookings, reviews) behind a small capability
// interface so the rest of the system never branches on whether a real
// database is reachable. Two adapters exist: MongoStore (live) and
// MemoryStore (deterministic, seeded). The adapter is chosen once at
// startup and injected.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a referenced document is absent.
var ErrNotFound = errors.New("document not found")

// Comparison operators supported by Filter.
const (
	OpEqual          = "=="
	OpGreater        = ">"
	OpGreaterOrEqual = ">="
	OpLess           = "<"
	OpLessOrEqual    = "<="
)

// Filter is an equality or range condition on a named field.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Order sorts results by a named field. Time-ordered collections are
// conventionally queried descending.
type Order struct {
	Field      string
	Descending bool
}

// Store is the document-store contract. Find and Get decode matching
// documents into out (a pointer to a slice, or a pointer to a struct).
type Store interface {
	Find(ctx context.Context, collection string, filters []Filter, order *Order, out any) error
	Get(ctx context.Context, collection, id string, out any) error
	Insert(ctx context.Context, collection string, doc any) (string, error)
	Delete(ctx context.Context, collection, id string) error
}

// Eq is shorthand for an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// Collection names used across the application.
const (
	CollectionUsers     = "users"
	CollectionProviders = "providers"
	CollectionServices  = "services"
	CollectionBookings  = "bookings"
	CollectionReviews   = "reviews"
)
