package test

import (
	"context"
	"sync"
	"time"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// StoreFacadeStub provides controllable behaviour for store endpoints.
type StoreFacadeStub struct {
	RegisterFn func(context.Context, string, model.GeoPoint, string) (*model.Store, string, error)
	RankingFn  func(context.Context, string) ([]model.RankEntry, error)
}

// RegisterStore delegates to the provided function or returns a default store.
func (s StoreFacadeStub) RegisterStore(ctx context.Context, name string, location model.GeoPoint, password string) (*model.Store, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, location, password)
	}
	return &model.Store{ID: 7, Name: name, Location: location}, model.PlaceUnknown, nil
}

// StoresRanking returns configured ranking entries.
func (s StoreFacadeStub) StoresRanking(ctx context.Context, province string) ([]model.RankEntry, error) {
	if s.RankingFn != nil {
		return s.RankingFn(ctx, province)
	}
	return []model.RankEntry{{Place: 1, StoreID: 7, Name: "store", Points: 3}}, nil
}

// ProductFacadeStub simulates product operations.
type ProductFacadeStub struct {
	AddFn      func(context.Context, *model.Product) (*model.Product, bool, error)
	ProductsFn func(context.Context) ([]model.Record, error)
}

// AddProduct delegates or echoes the candidate with a derived identity.
func (s ProductFacadeStub) AddProduct(ctx context.Context, candidate *model.Product) (*model.Product, bool, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, candidate)
	}
	stored := *candidate
	stored.ID = model.ProductID(candidate.StoreID, candidate.EAN, candidate.Series)
	return &stored, false, nil
}

// Products returns configured display records.
func (s ProductFacadeStub) Products(ctx context.Context) ([]model.Record, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Record{{"id": "7_5901234123457_A", "name": "bread"}}, nil
}

// UserFacadeStub simulates user and token operations.
type UserFacadeStub struct {
	RegisterFn func(context.Context, string, string, string) (*model.User, error)
	ProfileFn  func(context.Context, string) (model.Record, error)
	ValidateFn func(context.Context, string, string) (bool, error)
	IssueFn    func(context.Context, string) (*model.RedemptionToken, error)
}

// RegisterUser delegates or returns the user unchanged.
func (s UserFacadeStub) RegisterUser(ctx context.Context, username, email, password string) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, email, password)
	}
	return &model.User{Username: username, Email: email}, nil
}

// UserProfile returns a minimal credential-free record.
func (s UserFacadeStub) UserProfile(ctx context.Context, username string) (model.Record, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, username)
	}
	return model.Record{"username": username, "email": "", "points": int64(0)}, nil
}

// ValidateUser reports configured credential validation outcome.
func (s UserFacadeStub) ValidateUser(ctx context.Context, username, password string) (bool, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, username, password)
	}
	return true, nil
}

// IssueToken returns a deterministic token for the user.
func (s UserFacadeStub) IssueToken(ctx context.Context, username string) (*model.RedemptionToken, error) {
	if s.IssueFn != nil {
		return s.IssueFn(ctx, username)
	}
	return model.NewRedemptionToken(username, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)), nil
}

// RedemptionFacadeStub simulates redemptions.
type RedemptionFacadeStub struct {
	RedeemFn func(context.Context, string, int64, string, int64) (*model.RedemptionResult, error)
}

// Redeem delegates or returns default totals.
func (s RedemptionFacadeStub) Redeem(ctx context.Context, code string, storeID int64, productID string, quantity int64) (*model.RedemptionResult, error) {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, code, storeID, productID, quantity)
	}
	return &model.RedemptionResult{StorePoints: 7, UserPoints: 400}, nil
}

// LoyaltyFacadeStub aggregates all facade stubs for router-level tests.
type LoyaltyFacadeStub struct {
	StoreFacadeStub
	ProductFacadeStub
	UserFacadeStub
	RedemptionFacadeStub
}

// WorkerFacadeStub mimics worker interactions with the loyalty facade.
type WorkerFacadeStub struct {
	RefreshFn  func(context.Context) error
	SnapshotFn func(context.Context) ([]model.Store, error)
	Stores     []model.Store

	Refreshes int
	Warmed    []model.GeoPoint
	mu        sync.Mutex
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// RefreshRanking records the refresh and delegates when configured.
func (s *WorkerFacadeStub) RefreshRanking(ctx context.Context) error {
	s.mu.Lock()
	s.Refreshes++
	s.mu.Unlock()
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx)
	}
	return nil
}

// StoresSnapshot returns the configured store set.
func (s *WorkerFacadeStub) StoresSnapshot(ctx context.Context) ([]model.Store, error) {
	if s.SnapshotFn != nil {
		return s.SnapshotFn(ctx)
	}
	return s.Stores, nil
}

// WarmGeo records warmed points.
func (s *WorkerFacadeStub) WarmGeo(_ context.Context, pt model.GeoPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Warmed = append(s.Warmed, pt)
}
