package repository

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// UserRegistry enforces username uniqueness.
type UserRegistry interface {
	// Register resolves username collisions by appending "0" until a free
	// name is found. Callers must use the identity of the returned user,
	// not the requested one.
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ValidateCredentials(ctx context.Context, username, password string) (bool, error)
}
