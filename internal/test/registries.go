package test

import (
	"context"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

// StoreRegistryStub allows tests to customize store registry behaviour.
type StoreRegistryStub struct {
	RegisterFn func(context.Context, string, model.GeoPoint, string) (*model.Store, error)
	GetByIDFn  func(context.Context, int64) (*model.Store, error)
	ListFn     func(context.Context) ([]model.Store, error)
	ValidateFn func(context.Context, int64, string) (bool, error)

	Stores []model.Store
}

func (s *StoreRegistryStub) Register(ctx context.Context, name string, location model.GeoPoint, password string) (*model.Store, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, location, password)
	}
	return &model.Store{ID: 1, Name: name, Location: location}, nil
}

func (s *StoreRegistryStub) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, st := range s.Stores {
		if st.ID == id {
			store := st
			return &store, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *StoreRegistryStub) List(ctx context.Context) ([]model.Store, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Stores, nil
}

func (s *StoreRegistryStub) ValidateCredentials(ctx context.Context, id int64, password string) (bool, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, id, password)
	}
	return true, nil
}

// ProductRegistryStub allows tests to customize product registry behaviour.
type ProductRegistryStub struct {
	RegisterOrMergeFn func(context.Context, *model.Product) (*model.Product, bool, error)
	GetByIDFn         func(context.Context, string) (*model.Product, error)
	ListFn            func(context.Context) ([]model.Product, error)

	Products []model.Product
}

func (s *ProductRegistryStub) RegisterOrMerge(ctx context.Context, candidate *model.Product) (*model.Product, bool, error) {
	if s.RegisterOrMergeFn != nil {
		return s.RegisterOrMergeFn(ctx, candidate)
	}
	return candidate, false, nil
}

func (s *ProductRegistryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRegistryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Products, nil
}

// UserRegistryStub allows tests to customize user registry behaviour.
type UserRegistryStub struct {
	RegisterFn func(context.Context, string, string, string) (*model.User, error)
	GetFn      func(context.Context, string) (*model.User, error)
	ValidateFn func(context.Context, string, string) (bool, error)

	Users map[string]*model.User
}

func (s *UserRegistryStub) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, email, password)
	}
	return &model.User{Username: username, Email: email}, nil
}

func (s *UserRegistryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, username)
	}
	if user, ok := s.Users[username]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRegistryStub) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, username, password)
	}
	return true, nil
}

// TokenRegistryStub allows tests to customize token registry behaviour.
type TokenRegistryStub struct {
	IssueFn   func(context.Context, string) (*model.RedemptionToken, error)
	ResolveFn func(context.Context, string) (*model.User, error)
}

func (s *TokenRegistryStub) Issue(ctx context.Context, username string) (*model.RedemptionToken, error) {
	if s.IssueFn != nil {
		return s.IssueFn(ctx, username)
	}
	return &model.RedemptionToken{Owner: username, Code: username + "_19700101000000"}, nil
}

func (s *TokenRegistryStub) Resolve(ctx context.Context, code string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, code)
	}
	return nil, domainErrors.ErrNotFound
}

// RedemptionApplierCall records one ApplyRedemption invocation.
type RedemptionApplierCall struct {
	Delta repository.RedemptionDelta
}

// RedemptionApplierStub records applied deltas and returns configured totals.
type RedemptionApplierStub struct {
	ApplyFn func(context.Context, repository.RedemptionDelta) (int64, int64, error)

	Calls       []RedemptionApplierCall
	StorePoints int64
	UserPoints  int64
}

func (s *RedemptionApplierStub) ApplyRedemption(ctx context.Context, delta repository.RedemptionDelta) (int64, int64, error) {
	s.Calls = append(s.Calls, RedemptionApplierCall{Delta: delta})
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, delta)
	}
	return s.StorePoints, s.UserPoints, nil
}
