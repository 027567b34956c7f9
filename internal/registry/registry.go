package registry

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
	pkgAuth "github.com/gazetka/loyalty/internal/pkg/auth"
)

// maxUsernameAttempts bounds the append-"0" collision loop. Exceeding it
// fails the request with ErrDuplicateIdentity instead of looping forever.
const maxUsernameAttempts = 100

// Registry enforces identity, uniqueness, and merge rules for stores,
// products, users, and redemption tokens on top of the document-store
// collaborator. Mutations to a single entity are serialized by a lock
// keyed on the entity identity, so concurrent redemptions on the same
// store or product cannot lose updates.
type Registry struct {
	docs   repository.DocStore
	geo    model.GeoResolver
	hasher pkgAuth.PasswordHasher
	logger *slog.Logger

	locks sync.Map // identity key -> *sync.Mutex

	idSpace       int64
	idMaxAttempts int

	randInt func(int64) int64
	now     func() time.Time
}

// Options tune identifier allocation; zero values pick the defaults.
type Options struct {
	IDSpace       int64
	IDMaxAttempts int
	RandInt       func(int64) int64
	Now           func() time.Time
}

const (
	defaultIDSpace       = 100000
	defaultIDMaxAttempts = 1000
)

// New constructs the registry.
func New(docs repository.DocStore, geo model.GeoResolver, hasher pkgAuth.PasswordHasher, logger *slog.Logger, opts Options) *Registry {
	if opts.IDSpace <= 0 {
		opts.IDSpace = defaultIDSpace
	}
	if opts.IDMaxAttempts <= 0 {
		opts.IDMaxAttempts = defaultIDMaxAttempts
	}
	if opts.RandInt == nil {
		opts.RandInt = rand.Int63n
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		docs:          docs,
		geo:           geo,
		hasher:        hasher,
		logger:        logger,
		idSpace:       opts.IDSpace,
		idMaxAttempts: opts.IDMaxAttempts,
		randInt:       opts.RandInt,
		now:           opts.Now,
	}
}

// Factory methods for entity registries.
func (r *Registry) Stores() repository.StoreRegistry      { return &storeRegistry{r} }
func (r *Registry) Products() repository.ProductRegistry  { return &productRegistry{r} }
func (r *Registry) Users() repository.UserRegistry        { return &userRegistry{r} }
func (r *Registry) Tokens() repository.TokenRegistry      { return &tokenRegistry{r} }
func (r *Registry) Redemptions() repository.RedemptionApplier { return &redemptionApplier{r} }

// lockEntity serializes mutations on one entity identity. The returned
// function releases the lock.
func (r *Registry) lockEntity(key string) func() {
	actual, _ := r.locks.LoadOrStore(key, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func storeKey(id int64) string     { return fmt.Sprintf("store:%d", id) }
func productKey(id string) string  { return "product:" + id }
func userKey(username string) string { return "user:" + username }

// --- shared lookups over a document-store view ---
//
// The same helpers serve both direct access and the transactional view
// used by the redemption applier.

func findStore(ctx context.Context, docs repository.DocStore, id int64) (*model.Store, error) {
	recs := docs.Find(ctx, repository.CollectionStores, repository.Match{"id": id})
	if len(recs) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return model.StoreFromRecord(recs[0])
}

func findUser(ctx context.Context, docs repository.DocStore, username string) (*model.User, error) {
	recs := docs.Find(ctx, repository.CollectionUsers, repository.Match{"username": username})
	if len(recs) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return model.UserFromRecord(recs[0])
}

// docStoreSource adapts a document-store view to the StoreSource used by
// product deserialization.
type docStoreSource struct {
	docs repository.DocStore
}

func (s docStoreSource) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	return findStore(ctx, s.docs, id)
}

func findProduct(ctx context.Context, docs repository.DocStore, id string) (*model.Product, error) {
	recs := docs.Find(ctx, repository.CollectionProducts, repository.Match{"id": id})
	if len(recs) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return model.ProductFromRecord(ctx, recs[0], docStoreSource{docs})
}
