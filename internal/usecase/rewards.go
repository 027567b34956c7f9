package usecase

import (
	"context"
	"math"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

// ScorePerUnit is the normalized discount-depth score a store earns per
// unit sold: (original − discounted) / original × 10.
func ScorePerUnit(p *model.Product) (float64, error) {
	if p.PriceOriginal == 0 {
		return 0, domainErrors.ErrZeroPrice
	}
	return (p.PriceOriginal - p.PriceUsers) / p.PriceOriginal * 10, nil
}

// userGain is the shopper's reward: money saved in cents, truncated to an
// integer. It is deliberately a different unit basis than the store score
// and the two formulas must stay distinct.
func userGain(p *model.Product, quantity int64) int64 {
	return int64((p.PriceOriginal - p.PriceUsers) * float64(quantity) * 100)
}

// RewardsUseCase turns a redemption request into point accruals and an
// inventory decrement.
type RewardsUseCase struct {
	stores   repository.StoreRegistry
	products repository.ProductRegistry
	tokens   repository.TokenRegistry
	applier  repository.RedemptionApplier
}

// NewRewardsUseCase constructs RewardsUseCase.
func NewRewardsUseCase(stores repository.StoreRegistry, products repository.ProductRegistry, tokens repository.TokenRegistry, applier repository.RedemptionApplier) *RewardsUseCase {
	return &RewardsUseCase{stores: stores, products: products, tokens: tokens, applier: applier}
}

// Redeem resolves the token, product, and store, checks the quantity
// preconditions before any mutation, computes both gains, and hands the
// combined delta to the applier. Returns the updated point totals.
func (u *RewardsUseCase) Redeem(ctx context.Context, code string, storeID int64, productID string, quantity int64) (*model.RedemptionResult, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	user, err := u.tokens.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := u.stores.GetByID(ctx, storeID); err != nil {
		return nil, err
	}

	if quantity > product.Quantity {
		return nil, domainErrors.ErrInsufficientStock
	}

	perUnit, err := ScorePerUnit(product)
	if err != nil {
		return nil, err
	}
	storeGain := int64(math.Round(perUnit * float64(quantity)))

	storePoints, userPoints, err := u.applier.ApplyRedemption(ctx, repository.RedemptionDelta{
		Username:  user.Username,
		StoreID:   storeID,
		ProductID: product.ID,
		Quantity:  quantity,
		StoreGain: storeGain,
		UserGain:  userGain(product, quantity),
	})
	if err != nil {
		return nil, err
	}

	return &model.RedemptionResult{StorePoints: storePoints, UserPoints: userPoints}, nil
}
