package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
)

// Rank builds a ranking snapshot over the given stores. An empty filter or
// the "global" sentinel ranks everything; any other value keeps only
// stores whose resolved province matches it exactly, case-sensitively. An
// empty result is not an error.
//
// The sort is stable and descending by points: stores with equal points
// keep their relative order from the filtered input. Place numbers run
// 1..N with no gaps; tied points do not share a place.
func Rank(ctx context.Context, stores []model.Store, provinceFilter string, geo model.GeoResolver) []model.RankEntry {
	filtered := stores
	if provinceFilter != "" && provinceFilter != model.ProvinceGlobal {
		filtered = make([]model.Store, 0, len(stores))
		for _, store := range stores {
			if geo.Province(ctx, store.Location) == provinceFilter {
				filtered = append(filtered, store)
			}
		}
	}

	ordered := make([]model.Store, len(filtered))
	copy(ordered, filtered)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Points > ordered[j].Points
	})

	entries := make([]model.RankEntry, len(ordered))
	for i, store := range ordered {
		entries[i] = model.RankEntry{
			Place:    i + 1,
			StoreID:  store.ID,
			Name:     store.Name,
			Points:   store.Points,
			Location: store.Location,
		}
	}
	return entries
}

// RankingUseCase computes ranking snapshots over the store collection and
// keeps the last computed global ranking. The cache is a read-mostly,
// eventually consistent projection: registering a store appends to the
// backing collection without touching it, and a snapshot computed just
// before a concurrent write commits is acceptable staleness.
type RankingUseCase struct {
	stores repository.StoreRegistry
	geo    model.GeoResolver

	mu     sync.RWMutex
	cached []model.RankEntry
}

// NewRankingUseCase constructs RankingUseCase.
func NewRankingUseCase(stores repository.StoreRegistry, geo model.GeoResolver) *RankingUseCase {
	return &RankingUseCase{stores: stores, geo: geo}
}

// Ranking recomputes a snapshot from the backing collection. A global
// request also refreshes the cache.
func (u *RankingUseCase) Ranking(ctx context.Context, provinceFilter string) ([]model.RankEntry, error) {
	stores, err := u.stores.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := Rank(ctx, stores, provinceFilter, u.geo)

	if provinceFilter == "" || provinceFilter == model.ProvinceGlobal {
		u.mu.Lock()
		u.cached = entries
		u.mu.Unlock()
	}
	return entries, nil
}

// Cached returns the last computed global ranking without recomputation.
// Callers needing fresh data after an insert must call Ranking instead.
func (u *RankingUseCase) Cached() []model.RankEntry {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.cached
}

// Refresh recomputes the cached global ranking.
func (u *RankingUseCase) Refresh(ctx context.Context) error {
	_, err := u.Ranking(ctx, model.ProvinceGlobal)
	return err
}
