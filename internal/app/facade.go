package app

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
	"github.com/gazetka/loyalty/internal/usecase"
)

// LoyaltyFacade aggregates the core engines behind the single surface the
// HTTP layer and the background worker consume.
type LoyaltyFacade struct {
	stores   repository.StoreRegistry
	products repository.ProductRegistry
	users    repository.UserRegistry
	tokens   repository.TokenRegistry
	ranking  *usecase.RankingUseCase
	rewards  *usecase.RewardsUseCase
	geo      model.GeoResolver
}

// NewLoyaltyFacade constructs the facade.
func NewLoyaltyFacade(
	stores repository.StoreRegistry,
	products repository.ProductRegistry,
	users repository.UserRegistry,
	tokens repository.TokenRegistry,
	ranking *usecase.RankingUseCase,
	rewards *usecase.RewardsUseCase,
	geo model.GeoResolver,
) *LoyaltyFacade {
	return &LoyaltyFacade{
		stores:   stores,
		products: products,
		users:    users,
		tokens:   tokens,
		ranking:  ranking,
		rewards:  rewards,
		geo:      geo,
	}
}

// RegisterStore registers a store and resolves its city for the response.
func (f *LoyaltyFacade) RegisterStore(ctx context.Context, name string, location model.GeoPoint, password string) (*model.Store, string, error) {
	store, err := f.stores.Register(ctx, name, location, password)
	if err != nil {
		return nil, "", err
	}
	return store, f.geo.City(ctx, location), nil
}

// StoresRanking recomputes a ranking snapshot, optionally filtered by
// province.
func (f *LoyaltyFacade) StoresRanking(ctx context.Context, province string) ([]model.RankEntry, error) {
	return f.ranking.Ranking(ctx, province)
}

// AddProduct inserts or merges a product candidate.
func (f *LoyaltyFacade) AddProduct(ctx context.Context, candidate *model.Product) (*model.Product, bool, error) {
	return f.products.RegisterOrMerge(ctx, candidate)
}

// Products returns display records for all products, with owning-store
// fields resolved freshly.
func (f *LoyaltyFacade) Products(ctx context.Context) ([]model.Record, error) {
	products, err := f.products.List(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[int64]*model.Store)
	records := make([]model.Record, 0, len(products))
	for i := range products {
		product := products[i]
		owner, ok := owners[product.StoreID]
		if !ok {
			owner, err = f.stores.GetByID(ctx, product.StoreID)
			if err != nil {
				return nil, err
			}
			owners[product.StoreID] = owner
		}
		records = append(records, product.ToRecord(ctx, owner, f.geo))
	}
	return records, nil
}

// RegisterUser registers a user; the returned user carries the final,
// possibly suffixed, username.
func (f *LoyaltyFacade) RegisterUser(ctx context.Context, username, email, password string) (*model.User, error) {
	return f.users.Register(ctx, username, email, password)
}

// UserProfile returns the user record without the credential field.
func (f *LoyaltyFacade) UserProfile(ctx context.Context, username string) (model.Record, error) {
	user, err := f.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := user.ToRecord()
	delete(profile, "password")
	return profile, nil
}

// ValidateUser checks user credentials.
func (f *LoyaltyFacade) ValidateUser(ctx context.Context, username, password string) (bool, error) {
	return f.users.ValidateCredentials(ctx, username, password)
}

// IssueToken issues a redemption token for the user.
func (f *LoyaltyFacade) IssueToken(ctx context.Context, username string) (*model.RedemptionToken, error) {
	return f.tokens.Issue(ctx, username)
}

// Redeem performs a redemption and returns the updated point totals.
func (f *LoyaltyFacade) Redeem(ctx context.Context, code string, storeID int64, productID string, quantity int64) (*model.RedemptionResult, error) {
	return f.rewards.Redeem(ctx, code, storeID, productID, quantity)
}

// RefreshRanking recomputes the cached global ranking.
func (f *LoyaltyFacade) RefreshRanking(ctx context.Context) error {
	return f.ranking.Refresh(ctx)
}

// StoresSnapshot lists all stores for geo cache warm-up.
func (f *LoyaltyFacade) StoresSnapshot(ctx context.Context) ([]model.Store, error) {
	return f.stores.List(ctx)
}

// WarmGeo resolves both place names for the point, priming any cache in
// front of the geo collaborator.
func (f *LoyaltyFacade) WarmGeo(ctx context.Context, pt model.GeoPoint) {
	_ = f.geo.City(ctx, pt)
	_ = f.geo.Province(ctx, pt)
}
