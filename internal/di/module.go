package di

import (
	"go.uber.org/fx"

	"github.com/gazetka/loyalty/internal/adapter/geo"
	"github.com/gazetka/loyalty/internal/app"
	"github.com/gazetka/loyalty/internal/config"
	"github.com/gazetka/loyalty/internal/logger"
	"github.com/gazetka/loyalty/internal/pkg/auth"
	"github.com/gazetka/loyalty/internal/registry"
	"github.com/gazetka/loyalty/internal/server/http/handlers"
	"github.com/gazetka/loyalty/internal/server/http/router"
	"github.com/gazetka/loyalty/internal/storage/postgres"
	"github.com/gazetka/loyalty/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		geo.Module,
		registry.Module,
		usecase.Module,
		fx.Provide(func(facade *app.LoyaltyFacade) handlers.LoyaltyFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
