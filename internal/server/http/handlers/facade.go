package handlers

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// StoreFacade describes store capabilities required by handlers.
type StoreFacade interface {
	RegisterStore(ctx context.Context, name string, location model.GeoPoint, password string) (*model.Store, string, error)
	StoresRanking(ctx context.Context, province string) ([]model.RankEntry, error)
}

// ProductFacade encapsulates product operations exposed via HTTP.
type ProductFacade interface {
	AddProduct(ctx context.Context, candidate *model.Product) (*model.Product, bool, error)
	Products(ctx context.Context) ([]model.Record, error)
}

// UserFacade provides user and token related operations.
type UserFacade interface {
	RegisterUser(ctx context.Context, username, email, password string) (*model.User, error)
	UserProfile(ctx context.Context, username string) (model.Record, error)
	ValidateUser(ctx context.Context, username, password string) (bool, error)
	IssueToken(ctx context.Context, username string) (*model.RedemptionToken, error)
}

// RedemptionFacade performs point redemptions.
type RedemptionFacade interface {
	Redeem(ctx context.Context, code string, storeID int64, productID string, quantity int64) (*model.RedemptionResult, error)
}

// LoyaltyFacade aggregates the full set of operations used across handlers.
type LoyaltyFacade interface {
	StoreFacade
	ProductFacade
	UserFacade
	RedemptionFacade
}
