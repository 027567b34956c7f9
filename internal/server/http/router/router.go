package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/gazetka/loyalty/internal/server/http/handlers"
	"github.com/gazetka/loyalty/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LoyaltyFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	storeHandler := handlers.NewStoreHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	redemptionHandler := handlers.NewRedemptionHandler(facade)

	api := engine.Group("/api")
	api.GET("/ranking/stores", storeHandler.Ranking)
	api.POST("/stores", storeHandler.Register)
	api.GET("/products", productHandler.List)
	api.POST("/products", productHandler.Add)
	api.POST("/redemptions", redemptionHandler.Redeem)
	api.POST("/users", userHandler.Register)
	api.GET("/users/:username", userHandler.Profile)
	api.GET("/users/:username/qr", userHandler.QRToken)
	api.POST("/sessions", userHandler.Session)

	return engine
}
