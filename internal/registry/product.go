package registry

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

type productRegistry struct {
	r *Registry
}

// RegisterOrMerge inserts the candidate under its derived identity or, when
// the identity already exists, adds the candidate quantity to the stored
// row. Only quantity accumulates: price, category, and the other fields of
// the stored row stay untouched. The merge runs under the product lock so
// two concurrent adds of the same product cannot lose a quantity.
func (pr *productRegistry) RegisterOrMerge(ctx context.Context, candidate *model.Product) (*model.Product, bool, error) {
	candidate.ID = model.ProductID(candidate.StoreID, candidate.EAN, candidate.Series)

	owner, err := findStore(ctx, pr.r.docs, candidate.StoreID)
	if err != nil {
		return nil, false, err
	}

	unlock := pr.r.lockEntity(productKey(candidate.ID))
	defer unlock()

	err = pr.r.docs.InsertUnique(ctx, repository.CollectionProducts, "id", candidate.ToRecord(ctx, owner, pr.r.geo))
	if err == nil {
		return candidate, false, nil
	}
	if !errors.Is(err, domainErrors.ErrDuplicateIdentity) {
		return nil, false, err
	}

	existing, err := findProduct(ctx, pr.r.docs, candidate.ID)
	if err != nil {
		return nil, false, err
	}

	merged := existing.Quantity + candidate.Quantity
	if err := pr.r.docs.Update(ctx, repository.CollectionProducts, repository.Match{"id": candidate.ID}, model.Record{"quantity": merged}); err != nil {
		return nil, false, err
	}
	existing.Quantity = merged
	return existing, true, nil
}

func (pr *productRegistry) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return findProduct(ctx, pr.r.docs, id)
}

// List returns all products in encounter order, skipping malformed records.
func (pr *productRegistry) List(ctx context.Context) ([]model.Product, error) {
	recs := pr.r.docs.Find(ctx, repository.CollectionProducts, repository.Match{})
	products := make([]model.Product, 0, len(recs))
	for _, rec := range recs {
		product, err := model.ProductFromRecord(ctx, rec, docStoreSource{pr.r.docs})
		if err != nil {
			pr.r.logger.Warn("skipping malformed product record", slog.String("error", err.Error()))
			continue
		}
		products = append(products, *product)
	}
	return products, nil
}
