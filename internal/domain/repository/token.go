package repository

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// TokenRegistry issues and resolves redemption tokens. Issue always
// succeeds for an existing user and never deduplicates; repeated calls
// produce multiple valid tokens.
type TokenRegistry interface {
	Issue(ctx context.Context, username string) (*model.RedemptionToken, error)
	// Resolve maps a token code back to its owning user.
	Resolve(ctx context.Context, code string) (*model.User, error)
}
