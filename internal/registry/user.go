package registry

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

type userRegistry struct {
	r *Registry
}

// Register inserts the user under the requested username, appending the
// literal character "0" and retrying while the name is taken. The suffixed
// name becomes the identity of the returned user. The conditional insert
// makes each check-and-claim atomic, so two concurrent registrations of
// the same name cannot both win it.
func (ur *userRegistry) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := ur.r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	candidate := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		err := ur.r.docs.InsertUnique(ctx, repository.CollectionUsers, "username", candidate.ToRecord())
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, domainErrors.ErrDuplicateIdentity) {
			return nil, err
		}
		candidate.Username += "0"
	}

	return nil, fmt.Errorf("resolve username collision after %d attempts: %w", maxUsernameAttempts, domainErrors.ErrDuplicateIdentity)
}

func (ur *userRegistry) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return findUser(ctx, ur.r.docs, username)
}

func (ur *userRegistry) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	user, err := findUser(ctx, ur.r.docs, username)
	if err != nil {
		return false, err
	}
	if err := ur.r.hasher.Compare(user.PasswordHash, password); err != nil {
		return false, nil
	}
	return true, nil
}
