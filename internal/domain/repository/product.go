package repository

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// ProductRegistry enforces the derived-identity merge semantics for
// products.
type ProductRegistry interface {
	// RegisterOrMerge inserts the candidate or, when its derived identity
	// already exists, adds the candidate quantity to the stored row. Price
	// and category fields of an existing row are never overwritten.
	// The returned bool reports whether a merge happened.
	RegisterOrMerge(ctx context.Context, candidate *model.Product) (*model.Product, bool, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}
