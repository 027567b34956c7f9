package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
	testhelpers "github.com/gazetka/loyalty/internal/test"
)

func TestScorePerUnit(t *testing.T) {
	product := &model.Product{PriceOriginal: 5.99, PriceUsers: 3.99}
	got, err := ScorePerUnit(product)
	if err != nil {
		t.Fatalf("score per unit failed: %v", err)
	}
	want := (5.99 - 3.99) / 5.99 * 10
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected score %v, got %v", want, got)
	}
}

func TestScorePerUnitZeroPrice(t *testing.T) {
	if _, err := ScorePerUnit(&model.Product{PriceOriginal: 0}); !errors.Is(err, domainErrors.ErrZeroPrice) {
		t.Fatalf("expected zero price error, got %v", err)
	}
}

func newRewards(product *model.Product, applier *testhelpers.RedemptionApplierStub) *RewardsUseCase {
	stores := &testhelpers.StoreRegistryStub{Stores: []model.Store{{ID: product.StoreID}}}
	products := &testhelpers.ProductRegistryStub{Products: []model.Product{*product}}
	tokens := &testhelpers.TokenRegistryStub{ResolveFn: func(context.Context, string) (*model.User, error) {
		return &model.User{Username: "alice"}, nil
	}}
	return NewRewardsUseCase(stores, products, tokens, applier)
}

func TestRedeemComputesBothGains(t *testing.T) {
	product := &model.Product{ID: "7_111_A", StoreID: 7, PriceOriginal: 5.99, PriceUsers: 3.99, Quantity: 5}
	applier := &testhelpers.RedemptionApplierStub{StorePoints: 7, UserPoints: 400}
	uc := newRewards(product, applier)

	result, err := uc.Redeem(context.Background(), "alice_20240501120000", 7, "7_111_A", 2)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if result.StorePoints != 7 || result.UserPoints != 400 {
		t.Fatalf("unexpected totals %+v", result)
	}

	if len(applier.Calls) != 1 {
		t.Fatalf("expected one applied delta, got %d", len(applier.Calls))
	}
	delta := applier.Calls[0].Delta
	// Store gain rounds the discount-depth score; user gain truncates cents
	// saved. 5.99→3.99 × 2 units: round(3.3389×2)=7 and trunc(2.00×2×100)=400.
	if delta.StoreGain != 7 {
		t.Fatalf("expected store gain 7, got %d", delta.StoreGain)
	}
	if delta.UserGain != 400 {
		t.Fatalf("expected user gain 400, got %d", delta.UserGain)
	}
	if delta.Username != "alice" || delta.Quantity != 2 || delta.ProductID != "7_111_A" {
		t.Fatalf("unexpected delta %+v", delta)
	}
}

func TestRedeemInvalidQuantity(t *testing.T) {
	product := &model.Product{ID: "7_111_A", StoreID: 7, PriceOriginal: 1, Quantity: 5}
	applier := &testhelpers.RedemptionApplierStub{}
	uc := newRewards(product, applier)

	for _, qty := range []int64{0, -3} {
		if _, err := uc.Redeem(context.Background(), "c", 7, "7_111_A", qty); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected invalid quantity, got %v", qty, err)
		}
	}
	if len(applier.Calls) != 0 {
		t.Fatal("expected no mutation for invalid quantity")
	}
}

func TestRedeemInsufficientStock(t *testing.T) {
	product := &model.Product{ID: "7_111_A", StoreID: 7, PriceOriginal: 1, Quantity: 2}
	applier := &testhelpers.RedemptionApplierStub{}
	uc := newRewards(product, applier)

	if _, err := uc.Redeem(context.Background(), "c", 7, "7_111_A", 3); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if len(applier.Calls) != 0 {
		t.Fatal("expected no mutation when stock is short")
	}
}

func TestRedeemZeroPrice(t *testing.T) {
	product := &model.Product{ID: "7_111_A", StoreID: 7, PriceOriginal: 0, Quantity: 5}
	applier := &testhelpers.RedemptionApplierStub{}
	uc := newRewards(product, applier)

	if _, err := uc.Redeem(context.Background(), "c", 7, "7_111_A", 1); !errors.Is(err, domainErrors.ErrZeroPrice) {
		t.Fatalf("expected zero price error, got %v", err)
	}
	if len(applier.Calls) != 0 {
		t.Fatal("expected no mutation for zero price")
	}
}

func TestRedeemUnknownToken(t *testing.T) {
	product := &model.Product{ID: "7_111_A", StoreID: 7, PriceOriginal: 1, Quantity: 5}
	stores := &testhelpers.StoreRegistryStub{Stores: []model.Store{{ID: 7}}}
	products := &testhelpers.ProductRegistryStub{Products: []model.Product{*product}}
	uc := NewRewardsUseCase(stores, products, &testhelpers.TokenRegistryStub{}, &testhelpers.RedemptionApplierStub{})

	if _, err := uc.Redeem(context.Background(), "nope", 7, "7_111_A", 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown token, got %v", err)
	}
}

func TestRedeemPropagatesApplierError(t *testing.T) {
	product := &model.Product{ID: "7_111_A", StoreID: 7, PriceOriginal: 5.99, PriceUsers: 3.99, Quantity: 5}
	applier := &testhelpers.RedemptionApplierStub{ApplyFn: func(context.Context, repository.RedemptionDelta) (int64, int64, error) {
		return 0, 0, domainErrors.ErrInsufficientStock
	}}
	uc := newRewards(product, applier)

	if _, err := uc.Redeem(context.Background(), "c", 7, "7_111_A", 1); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected applier error to propagate, got %v", err)
	}
}
