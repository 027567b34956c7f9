package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
	testhelpers "github.com/gazetka/loyalty/internal/test"
)

var issuedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRegistry(docs repository.DocStore, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = func() time.Time { return issuedAt }
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return New(docs, &testhelpers.StaticResolver{DefaultCity: "Poznan"}, testhelpers.HasherStub{}, logger, opts)
}

func sequenceRand(values ...int64) func(int64) int64 {
	i := 0
	return func(int64) int64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestStoreRegisterRetriesOnCollision(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{RandInt: sequenceRand(5, 5, 7)})

	first, err := reg.Stores().Register(context.Background(), "a", model.GeoPoint{}, "pw")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if first.ID != 5 {
		t.Fatalf("expected first draw 5, got %d", first.ID)
	}

	second, err := reg.Stores().Register(context.Background(), "b", model.GeoPoint{}, "pw")
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if second.ID != 7 {
		t.Fatalf("expected fresh draw 7 after collision, got %d", second.ID)
	}
	if docs.Count(repository.CollectionStores) != 2 {
		t.Fatalf("expected 2 stores, got %d", docs.Count(repository.CollectionStores))
	}
}

func TestStoreRegisterExhaustsIdentifierSpace(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{IDSpace: 1, IDMaxAttempts: 3, RandInt: func(int64) int64 { return 0 }})

	if _, err := reg.Stores().Register(context.Background(), "a", model.GeoPoint{}, "pw"); err != nil {
		t.Fatalf("register into empty space failed: %v", err)
	}

	_, err := reg.Stores().Register(context.Background(), "b", model.GeoPoint{}, "pw")
	if !errors.Is(err, domainErrors.ErrIdentifierSpaceExhausted) {
		t.Fatalf("expected identifier space exhaustion, got %v", err)
	}
}

func TestStoreValidateCredentials(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{RandInt: sequenceRand(11)})

	store, err := reg.Stores().Register(context.Background(), "a", model.GeoPoint{}, "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	ok, err := reg.Stores().ValidateCredentials(context.Background(), store.ID, "secret")
	if err != nil || !ok {
		t.Fatalf("expected valid credentials, got %v/%v", ok, err)
	}

	ok, err = reg.Stores().ValidateCredentials(context.Background(), store.ID, "wrong")
	if err != nil || ok {
		t.Fatalf("expected invalid credentials without error, got %v/%v", ok, err)
	}

	if _, err := reg.Stores().ValidateCredentials(context.Background(), 9999, "secret"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown store, got %v", err)
	}
}

func TestStoreListSkipsMalformedRecords(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{RandInt: sequenceRand(11)})

	if _, err := reg.Stores().Register(context.Background(), "a", model.GeoPoint{}, "pw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := docs.Insert(context.Background(), repository.CollectionStores, model.Record{"id": int64(12)}); err != nil {
		t.Fatalf("insert broken record failed: %v", err)
	}

	stores, err := reg.Stores().List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stores) != 1 || stores[0].ID != 11 {
		t.Fatalf("expected the single well-formed store, got %v", stores)
	}
}

func TestUserRegisterSuffixesUsernameUntilFree(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{})

	want := []string{"alice", "alice0", "alice00"}
	for _, expected := range want {
		user, err := reg.Users().Register(context.Background(), "alice", "a@example.com", "pw")
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if user.Username != expected {
			t.Fatalf("expected username %q, got %q", expected, user.Username)
		}
	}
}

func TestUserRegisterBoundsSuffixAttempts(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{})

	for i := 0; i <= maxUsernameAttempts; i++ {
		name := "bob" + strings.Repeat("0", i)
		rec := model.Record{"username": name, "password": "x", "email": "", "points": int64(0)}
		if err := docs.InsertUnique(context.Background(), repository.CollectionUsers, "username", rec); err != nil {
			t.Fatalf("seed user %q failed: %v", name, err)
		}
	}

	_, err := reg.Users().Register(context.Background(), "bob", "b@example.com", "pw")
	if !errors.Is(err, domainErrors.ErrDuplicateIdentity) {
		t.Fatalf("expected bounded collision loop to fail, got %v", err)
	}
}

func TestUserValidateCredentials(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{})

	if _, err := reg.Users().Register(context.Background(), "alice", "a@example.com", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	ok, err := reg.Users().ValidateCredentials(context.Background(), "alice", "secret")
	if err != nil || !ok {
		t.Fatalf("expected valid credentials, got %v/%v", ok, err)
	}
	ok, err = reg.Users().ValidateCredentials(context.Background(), "alice", "wrong")
	if err != nil || ok {
		t.Fatalf("expected invalid credentials without error, got %v/%v", ok, err)
	}
	if _, err := reg.Users().ValidateCredentials(context.Background(), "ghost", "secret"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func newSeededProduct(t *testing.T, reg *Registry, storeID int64, quantity int64) *model.Product {
	t.Helper()
	product, merged, err := reg.Products().RegisterOrMerge(context.Background(), &model.Product{
		Name:          "bread",
		Series:        "A",
		PriceOriginal: 5.99,
		PriceUsers:    3.99,
		ExpDate:       "2024-06-01",
		EAN:           "5901234123457",
		Category:      "bakery",
		StoreID:       storeID,
		Quantity:      quantity,
	})
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	if merged {
		t.Fatal("expected fresh insert, got merge")
	}
	return product
}

func TestProductRegisterOrMergeMergesQuantityOnly(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{RandInt: sequenceRand(7)})

	store, err := reg.Stores().Register(context.Background(), "lidl", model.GeoPoint{}, "pw")
	if err != nil {
		t.Fatalf("register store failed: %v", err)
	}
	newSeededProduct(t, reg, store.ID, 5)

	merged, wasMerge, err := reg.Products().RegisterOrMerge(context.Background(), &model.Product{
		Name:          "bread",
		Series:        "A",
		PriceOriginal: 9.99, // must not overwrite the stored price
		PriceUsers:    1.99,
		ExpDate:       "2024-06-01",
		EAN:           "5901234123457",
		Category:      "bakery",
		StoreID:       store.ID,
		Quantity:      3,
	})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if !wasMerge {
		t.Fatal("expected merge, got fresh insert")
	}
	if merged.Quantity != 8 {
		t.Fatalf("expected merged quantity 8, got %d", merged.Quantity)
	}
	if merged.PriceOriginal != 5.99 {
		t.Fatalf("expected stored price to survive merge, got %v", merged.PriceOriginal)
	}
	if docs.Count(repository.CollectionProducts) != 1 {
		t.Fatalf("expected single product row, got %d", docs.Count(repository.CollectionProducts))
	}
}

func TestProductRegisterOrMergeUnknownStore(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{})

	_, _, err := reg.Products().RegisterOrMerge(context.Background(), &model.Product{
		Name: "bread", EAN: "111", Series: "A", StoreID: 42, Quantity: 1, PriceOriginal: 1,
	})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown owning store, got %v", err)
	}
}

func TestTokenIssueAndResolve(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{})

	if _, err := reg.Users().Register(context.Background(), "alice", "a@example.com", "pw"); err != nil {
		t.Fatalf("register user failed: %v", err)
	}

	token, err := reg.Tokens().Issue(context.Background(), "alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token.Code != "alice_20240501120000" {
		t.Fatalf("unexpected token code %q", token.Code)
	}

	// Same second, same code: the stored token stays, the call succeeds.
	again, err := reg.Tokens().Issue(context.Background(), "alice")
	if err != nil {
		t.Fatalf("repeat issue failed: %v", err)
	}
	if again.Code != token.Code {
		t.Fatalf("expected identical code, got %q", again.Code)
	}
	if docs.Count(repository.CollectionTokens) != 1 {
		t.Fatalf("expected single stored token, got %d", docs.Count(repository.CollectionTokens))
	}

	owner, err := reg.Tokens().Resolve(context.Background(), token.Code)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if owner.Username != "alice" {
		t.Fatalf("unexpected owner %q", owner.Username)
	}
}

func TestTokenIssueUnknownUser(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{})

	if _, err := reg.Tokens().Issue(context.Background(), "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := reg.Tokens().Resolve(context.Background(), "nope"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown code, got %v", err)
	}
}

func TestApplyRedemptionAccruesAndDecrements(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{RandInt: sequenceRand(7)})

	store, err := reg.Stores().Register(context.Background(), "lidl", model.GeoPoint{}, "pw")
	if err != nil {
		t.Fatalf("register store failed: %v", err)
	}
	user, err := reg.Users().Register(context.Background(), "alice", "a@example.com", "pw")
	if err != nil {
		t.Fatalf("register user failed: %v", err)
	}
	product := newSeededProduct(t, reg, store.ID, 5)

	storePoints, userPoints, err := reg.Redemptions().ApplyRedemption(context.Background(), repository.RedemptionDelta{
		Username:  user.Username,
		StoreID:   store.ID,
		ProductID: product.ID,
		Quantity:  2,
		StoreGain: 7,
		UserGain:  400,
	})
	if err != nil {
		t.Fatalf("apply redemption failed: %v", err)
	}
	if storePoints != 7 || userPoints != 400 {
		t.Fatalf("unexpected totals %d/%d", storePoints, userPoints)
	}

	remaining, err := reg.Products().GetByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if remaining.Quantity != 3 {
		t.Fatalf("expected remaining quantity 3, got %d", remaining.Quantity)
	}
}

func TestApplyRedemptionDeletesExhaustedStock(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{RandInt: sequenceRand(7)})

	store, _ := reg.Stores().Register(context.Background(), "lidl", model.GeoPoint{}, "pw")
	user, _ := reg.Users().Register(context.Background(), "alice", "a@example.com", "pw")
	product := newSeededProduct(t, reg, store.ID, 2)

	if _, _, err := reg.Redemptions().ApplyRedemption(context.Background(), repository.RedemptionDelta{
		Username: user.Username, StoreID: store.ID, ProductID: product.ID,
		Quantity: 2, StoreGain: 7, UserGain: 400,
	}); err != nil {
		t.Fatalf("apply redemption failed: %v", err)
	}

	if docs.Count(repository.CollectionProducts) != 0 {
		t.Fatalf("expected zero-stock product to be deleted, got %d rows", docs.Count(repository.CollectionProducts))
	}
	if _, err := reg.Products().GetByID(context.Background(), product.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after deletion, got %v", err)
	}
}

func TestApplyRedemptionReChecksStock(t *testing.T) {
	docs := testhelpers.NewDocStoreFake()
	reg := newTestRegistry(docs, Options{RandInt: sequenceRand(7)})

	store, _ := reg.Stores().Register(context.Background(), "lidl", model.GeoPoint{}, "pw")
	user, _ := reg.Users().Register(context.Background(), "alice", "a@example.com", "pw")
	product := newSeededProduct(t, reg, store.ID, 2)

	_, _, err := reg.Redemptions().ApplyRedemption(context.Background(), repository.RedemptionDelta{
		Username: user.Username, StoreID: store.ID, ProductID: product.ID,
		Quantity: 5, StoreGain: 7, UserGain: 400,
	})
	if !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	untouched, err := reg.Products().GetByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if untouched.Quantity != 2 {
		t.Fatalf("expected stock untouched, got %d", untouched.Quantity)
	}
}
