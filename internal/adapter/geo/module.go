package geo

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/gazetka/loyalty/internal/config"
	"github.com/gazetka/loyalty/internal/domain/model"
)

// Module exposes the geo resolver to fx graphs. When a cache address is
// configured the HTTP client is wrapped in the Redis read-through cache.
var Module = fx.Provide(newResolver)

type resolverParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newResolver(p resolverParams) (model.GeoResolver, error) {
	client, err := NewHTTPClient(p.Config.GeoSystemAddress, p.Logger)
	if err != nil {
		return nil, err
	}

	if p.Config.GeoCacheAddr == "" {
		return client, nil
	}

	cached, err := NewCachedResolver(p.Config.GeoCacheAddr, client, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cached.Close()
			return nil
		},
	})
	return cached, nil
}
