package registry

import (
	"context"
	"errors"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

type tokenRegistry struct {
	r *Registry
}

// Issue creates a redemption token for an existing user. Codes are
// timestamp-qualified, so issuing within the same second yields the same
// code; the conditional insert then leaves the stored token in place and
// the call still succeeds. Tokens are never deduplicated across seconds
// and never invalidated after use.
func (tr *tokenRegistry) Issue(ctx context.Context, username string) (*model.RedemptionToken, error) {
	user, err := findUser(ctx, tr.r.docs, username)
	if err != nil {
		return nil, err
	}

	token := model.NewRedemptionToken(user.Username, tr.r.now())
	err = tr.r.docs.InsertUnique(ctx, repository.CollectionTokens, "code", token.ToRecord())
	if err != nil && !errors.Is(err, domainErrors.ErrDuplicateIdentity) {
		return nil, err
	}
	return token, nil
}

// Resolve maps a token code back to its owning user.
func (tr *tokenRegistry) Resolve(ctx context.Context, code string) (*model.User, error) {
	recs := tr.r.docs.Find(ctx, repository.CollectionTokens, repository.Match{"code": code})
	if len(recs) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	token, err := model.TokenFromRecord(recs[0])
	if err != nil {
		return nil, err
	}
	return findUser(ctx, tr.r.docs, token.Owner)
}
