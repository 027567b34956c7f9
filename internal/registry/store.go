package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

type storeRegistry struct {
	r *Registry
}

// Register allocates a fresh uniform random identifier and inserts the
// store conditionally. A collision triggers a fresh draw, not a sequential
// probe; the retry loop is the correctness mechanism, the range size is
// not. Attempts are bounded so an exhausted identifier space fails closed.
func (sr *storeRegistry) Register(ctx context.Context, name string, location model.GeoPoint, password string) (*model.Store, error) {
	hash, err := sr.r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	for attempt := 0; attempt < sr.r.idMaxAttempts; attempt++ {
		candidate := &model.Store{
			ID:         sr.r.randInt(sr.r.idSpace),
			Name:       name,
			Location:   location,
			Credential: hash,
		}

		err := sr.r.docs.InsertUnique(ctx, repository.CollectionStores, "id", candidate.ToRecord(ctx, sr.r.geo))
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, domainErrors.ErrDuplicateIdentity) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("allocate store id after %d attempts: %w", sr.r.idMaxAttempts, domainErrors.ErrIdentifierSpaceExhausted)
}

func (sr *storeRegistry) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	return findStore(ctx, sr.r.docs, id)
}

// List returns all stores in encounter order. Malformed records are logged
// and skipped rather than failing the bulk load.
func (sr *storeRegistry) List(ctx context.Context) ([]model.Store, error) {
	recs := sr.r.docs.Find(ctx, repository.CollectionStores, repository.Match{})
	stores := make([]model.Store, 0, len(recs))
	for _, rec := range recs {
		store, err := model.StoreFromRecord(rec)
		if err != nil {
			sr.r.logger.Warn("skipping malformed store record", slog.String("error", err.Error()))
			continue
		}
		stores = append(stores, *store)
	}
	return stores, nil
}

func (sr *storeRegistry) ValidateCredentials(ctx context.Context, id int64, password string) (bool, error) {
	store, err := findStore(ctx, sr.r.docs, id)
	if err != nil {
		return false, err
	}
	if err := sr.r.hasher.Compare(store.Credential, password); err != nil {
		return false, nil
	}
	return true, nil
}
