package di

import (
	"github.com/speeti/speeti/internal/adapter/mailer"
	"github.com/speeti/speeti/internal/app"
	"github.com/speeti/speeti/internal/config"
	"github.com/speeti/speeti/internal/logger"
	"github.com/speeti/speeti/internal/pkg/auth"
	"github.com/speeti/speeti/internal/server/http/handlers"
	"github.com/speeti/speeti/internal/server/http/router"
	"github.com/speeti/speeti/internal/storage/postgres"
	"github.com/speeti/speeti/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
