package registry

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/gazetka/loyalty/internal/config"
	"github.com/gazetka/loyalty/internal/domain/model"
	"github.com/gazetka/loyalty/internal/domain/repository"
	pkgAuth "github.com/gazetka/loyalty/internal/pkg/auth"
)

// Module wires the registry and its entity views for fx graphs.
var Module = fx.Options(
	fx.Provide(newRegistry),
	fx.Provide(
		func(r *Registry) repository.StoreRegistry { return r.Stores() },
		func(r *Registry) repository.ProductRegistry { return r.Products() },
		func(r *Registry) repository.UserRegistry { return r.Users() },
		func(r *Registry) repository.TokenRegistry { return r.Tokens() },
		func(r *Registry) repository.RedemptionApplier { return r.Redemptions() },
	),
)

type registryParams struct {
	fx.In

	Docs   repository.DocStore
	Geo    model.GeoResolver
	Hasher pkgAuth.PasswordHasher
	Config *config.Config
	Logger *slog.Logger
}

func newRegistry(p registryParams) *Registry {
	return New(p.Docs, p.Geo, p.Hasher, p.Logger, Options{
		IDSpace:       p.Config.StoreIDSpace,
		IDMaxAttempts: p.Config.StoreIDMaxAttempts,
	})
}
