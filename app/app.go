package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/bootstrap"
	coretelegram "github.com/sirajbot/siraj/core/telegram"
	"github.com/sirajbot/siraj/core/telegram/helpers"
	"github.com/sirajbot/siraj/core/telegram/router"
	"github.com/sirajbot/siraj/modules/hadith"
	"github.com/sirajbot/siraj/modules/warns"
)

// App holds the assembled bot: infrastructure plus feature handlers.
type App struct {
	cfg *Config
	db  *sqlx.DB

	warns  *warns.Handlers
	hadith *hadith.Handlers
}

// Bootstrap initializes infrastructure and constructs the feature set.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	capacity := cfg.Sessions.Capacity
	warnsSvc := warns.NewService(warns.NewPostgresRepository(res.DB))

	return &App{
		cfg:    cfg,
		db:     res.DB,
		warns:  warns.NewHandlers(warnsSvc, capacity),
		hadith: hadith.NewHandlers(hadith.NewClient(cfg.Hadith), capacity),
	}, nil
}

// TelegramRunOptions wires the registry, middleware chain, and routes.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.warns.Register(reg)
	a.hadith.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		OnAdminReject: func(c tele.Context) error {
			return helpers.SendText(c, "This command is available to chat admins only.")
		},
		OnAdminLookupFail: func(c tele.Context) error {
			return helpers.SendText(c, "Could not verify admin rights right now, please try again.")
		},
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStop: func(context.Context, coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
