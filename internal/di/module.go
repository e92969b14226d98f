package di

import (
	"go.uber.org/fx"

	"github.com/solterra/storefront/internal/adapter/brevo"
	"github.com/solterra/storefront/internal/adapter/emailqueue"
	"github.com/solterra/storefront/internal/adapter/paypal"
	"github.com/solterra/storefront/internal/adapter/sheets"
	"github.com/solterra/storefront/internal/adapter/stripe"
	"github.com/solterra/storefront/internal/app"
	"github.com/solterra/storefront/internal/config"
	"github.com/solterra/storefront/internal/i18n"
	"github.com/solterra/storefront/internal/logger"
	"github.com/solterra/storefront/internal/server/http/handlers"
	"github.com/solterra/storefront/internal/server/http/router"
	"github.com/solterra/storefront/internal/storage/postgres"
	"github.com/solterra/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		emailqueue.Module,
		stripe.Module,
		paypal.Module,
		sheets.Module,
		brevo.Module,
		usecase.Module,
		i18n.Module,
		fx.Provide(
			func(client stripe.Client) app.CheckoutProvider { return client },
			func(client paypal.Client) app.CaptureProvider { return client },
			func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
