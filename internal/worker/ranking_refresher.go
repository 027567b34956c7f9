package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// LoyaltyFacade exposes the subset of application functionality required by the worker.
type LoyaltyFacade interface {
	RefreshRanking(ctx context.Context) error
	StoresSnapshot(ctx context.Context) ([]model.Store, error)
	WarmGeo(ctx context.Context, pt model.GeoPoint)
}

// RankingRefresher periodically recomputes the cached global ranking and
// warms the geo resolver for every known store location concurrently.
type RankingRefresher struct {
	facade          LoyaltyFacade
	refreshInterval time.Duration
	workers         int
	logger          *slog.Logger

	jobs   chan model.GeoPoint
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRankingRefresher constructs the refresher worker pool.
func NewRankingRefresher(facade LoyaltyFacade, refreshInterval time.Duration, workers int, logger *slog.Logger) *RankingRefresher {
	if workers <= 0 {
		workers = 1
	}
	if refreshInterval <= 0 {
		refreshInterval = time.Second
	}
	return &RankingRefresher{
		facade:          facade,
		refreshInterval: refreshInterval,
		workers:         workers,
		logger:          logger,
		jobs:            make(chan model.GeoPoint, workers*4),
	}
}

// Start launches background processing.
func (p *RankingRefresher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *RankingRefresher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *RankingRefresher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refreshAndDispatch(ctx)
		}
	}
}

func (p *RankingRefresher) refreshAndDispatch(ctx context.Context) {
	if err := p.facade.RefreshRanking(ctx); err != nil {
		p.logger.Error("ranking refresh failed", slog.String("error", err.Error()))
		return
	}

	stores, err := p.facade.StoresSnapshot(ctx)
	if err != nil {
		p.logger.Error("stores snapshot failed", slog.String("error", err.Error()))
		return
	}
	for _, store := range stores {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- store.Location:
		}
	}
}

func (p *RankingRefresher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case pt, ok := <-p.jobs:
			if !ok {
				return
			}
			p.facade.WarmGeo(ctx, pt)
		}
	}
}
