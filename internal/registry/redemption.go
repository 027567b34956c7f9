package registry

import (
	"context"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

type redemptionApplier struct {
	r *Registry
}

// ApplyRedemption applies the four mutations of one redemption inside a
// single atomic unit: store points, user points, product quantity, and the
// deletion of a product whose stock reaches zero. The three entity locks
// are taken in a fixed order (user, store, product) so concurrent
// redemptions on overlapping entities cannot deadlock. Stock is re-read
// under the locks, so a race on the same product surfaces as
// ErrInsufficientStock here even after the use-case precondition passed.
func (ra *redemptionApplier) ApplyRedemption(ctx context.Context, delta repository.RedemptionDelta) (int64, int64, error) {
	unlockUser := ra.r.lockEntity(userKey(delta.Username))
	defer unlockUser()
	unlockStore := ra.r.lockEntity(storeKey(delta.StoreID))
	defer unlockStore()
	unlockProduct := ra.r.lockEntity(productKey(delta.ProductID))
	defer unlockProduct()

	var storePoints, userPoints int64

	err := ra.r.docs.Atomic(ctx, func(tx repository.DocStore) error {
		product, err := findProduct(ctx, tx, delta.ProductID)
		if err != nil {
			return err
		}
		store, err := findStore(ctx, tx, delta.StoreID)
		if err != nil {
			return err
		}
		user, err := findUser(ctx, tx, delta.Username)
		if err != nil {
			return err
		}

		if product.Quantity < delta.Quantity {
			return domainErrors.ErrInsufficientStock
		}

		remaining := product.Quantity - delta.Quantity
		if remaining == 0 {
			if err := tx.Delete(ctx, repository.CollectionProducts, repository.Match{"id": delta.ProductID}); err != nil {
				return err
			}
		} else {
			if err := tx.Update(ctx, repository.CollectionProducts, repository.Match{"id": delta.ProductID}, model.Record{"quantity": remaining}); err != nil {
				return err
			}
		}

		storePoints = store.Points + delta.StoreGain
		if err := tx.Update(ctx, repository.CollectionStores, repository.Match{"id": delta.StoreID}, model.Record{"points": storePoints}); err != nil {
			return err
		}

		userPoints = user.Points + delta.UserGain
		if err := tx.Update(ctx, repository.CollectionUsers, repository.Match{"username": delta.Username}, model.Record{"points": userPoints}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return storePoints, userPoints, nil
}
