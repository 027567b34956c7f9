package geo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/gazetka/loyalty/internal/domain/model"
)

const cacheTTL = 24 * time.Hour

// CachedResolver is a read-through Redis cache in front of another
// resolver. Coordinates are rounded to five decimals for the cache key, so
// nearby lookups share entries. Cache failures fall through to the inner
// resolver; unknown results are not cached.
type CachedResolver struct {
	inner  model.GeoResolver
	client *redis.Client
	logger *slog.Logger
}

// NewCachedResolver connects to Redis and wraps the inner resolver.
func NewCachedResolver(addr string, inner model.GeoResolver, logger *slog.Logger) (*CachedResolver, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect geo cache: %w", err)
	}

	return &CachedResolver{inner: inner, client: client, logger: logger}, nil
}

// Close releases the Redis connection.
func (r *CachedResolver) Close() {
	if r.client != nil {
		_ = r.client.Close()
	}
}

// City resolves through the cache.
func (r *CachedResolver) City(ctx context.Context, pt model.GeoPoint) string {
	return r.lookup(ctx, "city", pt, r.inner.City)
}

// Province resolves through the cache.
func (r *CachedResolver) Province(ctx context.Context, pt model.GeoPoint) string {
	return r.lookup(ctx, "province", pt, r.inner.Province)
}

func (r *CachedResolver) lookup(ctx context.Context, kind string, pt model.GeoPoint, resolve func(context.Context, model.GeoPoint) string) string {
	key := fmt.Sprintf("geo:%s:%.5f:%.5f", kind, pt.Lat, pt.Lon)

	cached, err := r.client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached
	}
	if err != nil && err != redis.Nil {
		r.logger.Warn("geo cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	resolved := resolve(ctx, pt)
	if resolved != model.PlaceUnknown {
		if err := r.client.Set(ctx, key, resolved, cacheTTL).Err(); err != nil {
			r.logger.Warn("geo cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return resolved
}
