package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/config"
	"github.com/solterra/storefront/internal/i18n"
	"github.com/solterra/storefront/internal/server/http/handlers"
	"github.com/solterra/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, store *i18n.Store, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	syncHandler := handlers.NewSyncHandler(facade)
	emailHandler := handlers.NewEmailHandler(facade)
	brevoHandler := handlers.NewBrevoHandler(facade)
	pagesHandler := handlers.NewPagesHandler(store)

	api := engine.Group("/api")
	api.POST("/checkout", checkoutHandler.Create)
	api.POST("/orders/paypal", orderHandler.PlacePayPal)

	operator := api.Group("")
	operator.Use(middleware.SyncAuth(cfg.SyncToken))
	operator.POST("/sync-orders", syncHandler.Push)
	operator.GET("/sync-orders", syncHandler.Ledger)
	operator.POST("/email-automations", emailHandler.Run)
	operator.GET("/email-automations", emailHandler.Stats)
	operator.POST("/brevo/sync", brevoHandler.Sync)

	for _, locale := range i18n.SupportedLocales {
		pages := engine.Group("/" + locale)
		pages.Use(middleware.WithLocale(locale))
		pages.GET("/*page", pagesHandler.Show)
	}

	engine.NoRoute(middleware.LocaleRedirect(cfg.DefaultLocale))

	return engine
}
