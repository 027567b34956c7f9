package repository

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// Match is a field-equality predicate over records in a collection.
type Match map[string]any

// DocStore is the narrow CRUD surface the core needs from the persistence
// collaborator. Any durable document or key/value store qualifies.
//
// Find degrades to an empty result on any lookup failure; it never reports
// an error to the core, so callers cannot distinguish "no data" from a
// transient persistence failure.
//
// InsertUnique makes the existence check and the insert one atomic unit at
// the persistence boundary; identity allocation must go through it rather
// than a check-then-act Find/Insert pair.
type DocStore interface {
	Insert(ctx context.Context, collection string, rec model.Record) error
	InsertUnique(ctx context.Context, collection, keyField string, rec model.Record) error
	Find(ctx context.Context, collection string, m Match) []model.Record
	Update(ctx context.Context, collection string, m Match, fields model.Record) error
	Delete(ctx context.Context, collection string, m Match) error

	// Atomic runs fn against a store view whose writes commit together or
	// not at all. Implementations without a transactional capability may run
	// fn directly.
	Atomic(ctx context.Context, fn func(DocStore) error) error
}

// Collection names used across the registry.
const (
	CollectionStores   = "stores"
	CollectionProducts = "products"
	CollectionUsers    = "users"
	CollectionTokens   = "qr_codes"
)
