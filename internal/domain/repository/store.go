package repository

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// StoreRegistry enforces identity rules for stores.
type StoreRegistry interface {
	// Register allocates a fresh random identifier, retrying on collision
	// within a bounded number of attempts.
	Register(ctx context.Context, name string, location model.GeoPoint, password string) (*model.Store, error)
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	ValidateCredentials(ctx context.Context, id int64, password string) (bool, error)
}
