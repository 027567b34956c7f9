package app

import (
	"context"
	"testing"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	testhelpers "github.com/gazetka/loyalty/internal/test"
	"github.com/gazetka/loyalty/internal/usecase"
)

func newFacade(stores *testhelpers.StoreRegistryStub, products *testhelpers.ProductRegistryStub, users *testhelpers.UserRegistryStub, geo *testhelpers.StaticResolver) *LoyaltyFacade {
	tokens := &testhelpers.TokenRegistryStub{}
	applier := &testhelpers.RedemptionApplierStub{}
	ranking := usecase.NewRankingUseCase(stores, geo)
	rewards := usecase.NewRewardsUseCase(stores, products, tokens, applier)
	return NewLoyaltyFacade(stores, products, users, tokens, ranking, rewards, geo)
}

func TestLoyaltyFacadeRegisterStore(t *testing.T) {
	stores := &testhelpers.StoreRegistryStub{}
	geo := &testhelpers.StaticResolver{DefaultCity: "Poznan"}
	facade := newFacade(stores, &testhelpers.ProductRegistryStub{}, &testhelpers.UserRegistryStub{}, geo)

	store, city, err := facade.RegisterStore(context.Background(), "biedronka", model.GeoPoint{Lat: 52.4, Lon: 16.9}, "secret")
	if err != nil {
		t.Fatalf("register store returned error: %v", err)
	}
	if store.Name != "biedronka" {
		t.Fatalf("unexpected store name %q", store.Name)
	}
	if city != "Poznan" {
		t.Fatalf("expected resolved city, got %q", city)
	}
}

func TestLoyaltyFacadeProductsReusesOwnerLookup(t *testing.T) {
	lookups := 0
	stores := &testhelpers.StoreRegistryStub{
		GetByIDFn: func(context.Context, int64) (*model.Store, error) {
			lookups++
			return &model.Store{ID: 7, Name: "lidl", Location: model.GeoPoint{Lat: 52.4, Lon: 16.9}}, nil
		},
	}
	products := &testhelpers.ProductRegistryStub{Products: []model.Product{
		{ID: "7_111_A", Name: "bread", EAN: "111", Series: "A", StoreID: 7, Quantity: 5},
		{ID: "7_222_B", Name: "milk", EAN: "222", Series: "B", StoreID: 7, Quantity: 3},
	}}
	geo := &testhelpers.StaticResolver{DefaultCity: "Poznan"}
	facade := newFacade(stores, products, &testhelpers.UserRegistryStub{}, geo)

	records, err := facade.Products(context.Background())
	if err != nil {
		t.Fatalf("products returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if lookups != 1 {
		t.Fatalf("expected single owner lookup, got %d", lookups)
	}
	if records[0]["store"] != "lidl" || records[0]["city"] != "Poznan" {
		t.Fatalf("unexpected display fields: %v", records[0])
	}
}

func TestLoyaltyFacadeProductsOwnerMissing(t *testing.T) {
	stores := &testhelpers.StoreRegistryStub{
		GetByIDFn: func(context.Context, int64) (*model.Store, error) {
			return nil, domainErrors.ErrNotFound
		},
	}
	products := &testhelpers.ProductRegistryStub{Products: []model.Product{{ID: "9_1_A", StoreID: 9}}}
	facade := newFacade(stores, products, &testhelpers.UserRegistryStub{}, &testhelpers.StaticResolver{})

	if _, err := facade.Products(context.Background()); err == nil {
		t.Fatal("expected error for missing owning store")
	}
}

func TestLoyaltyFacadeUserProfileStripsCredential(t *testing.T) {
	users := &testhelpers.UserRegistryStub{Users: map[string]*model.User{
		"alice": {Username: "alice", Email: "a@example.com", PasswordHash: "hash", Points: 12},
	}}
	facade := newFacade(&testhelpers.StoreRegistryStub{}, &testhelpers.ProductRegistryStub{}, users, &testhelpers.StaticResolver{})

	profile, err := facade.UserProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user profile returned error: %v", err)
	}
	if _, ok := profile["password"]; ok {
		t.Fatal("expected credential to be stripped from profile")
	}
	if profile["username"] != "alice" {
		t.Fatalf("unexpected username %v", profile["username"])
	}
}

func TestLoyaltyFacadeRankingAndRefresh(t *testing.T) {
	stores := &testhelpers.StoreRegistryStub{Stores: []model.Store{
		{ID: 1, Name: "a", Points: 3},
		{ID: 2, Name: "b", Points: 9},
	}}
	facade := newFacade(stores, &testhelpers.ProductRegistryStub{}, &testhelpers.UserRegistryStub{}, &testhelpers.StaticResolver{})

	entries, err := facade.StoresRanking(context.Background(), "")
	if err != nil {
		t.Fatalf("ranking returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].StoreID != 2 || entries[0].Place != 1 {
		t.Fatalf("unexpected ranking %v", entries)
	}

	if err := facade.RefreshRanking(context.Background()); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
}

func TestLoyaltyFacadeWarmGeo(t *testing.T) {
	geo := &testhelpers.StaticResolver{}
	facade := newFacade(&testhelpers.StoreRegistryStub{}, &testhelpers.ProductRegistryStub{}, &testhelpers.UserRegistryStub{}, geo)

	facade.WarmGeo(context.Background(), model.GeoPoint{Lat: 52.4, Lon: 16.9})
	if geo.CityCalls != 1 || geo.ProvinceCalls != 1 {
		t.Fatalf("expected both resolutions warmed, got %d/%d", geo.CityCalls, geo.ProvinceCalls)
	}
}
