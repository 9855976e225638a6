package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/config"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/infra/chain"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/infra/discord"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/infra/telegram"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/pkg/botfmt"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/scheduler"
	notifysvc "github.com/NastyaGoryachaya/token-price-notifier/internal/service/notify"
	pricingsvc "github.com/NastyaGoryachaya/token-price-notifier/internal/service/pricing"
	quotesvc "github.com/NastyaGoryachaya/token-price-notifier/internal/service/quote"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/transport/httptransport"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	chain *chain.Client
	e     *echo.Echo
	serv  *http.Server

	quotes  quotesvc.Service
	pricing pricingsvc.Service
	notify  notifysvc.Service

	updater *scheduler.Scheduler
	wg      sync.WaitGroup
}

func NewApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	app := &App{cfg: cfg, log: log}

	cc, err := chain.Dial(ctx, cfg.Chain.RPCURL, cfg.Chain.DialTimeout, log.With("component", "chain"))
	if err != nil {
		log.Error("chain client init failed", slog.String("error", err.Error()))
		return nil, err
	}
	app.chain = cc

	pairs := quotesvc.Pairs{
		Token:                common.HexToAddress(cfg.Chain.TokenAddress),
		Router:               common.HexToAddress(cfg.Chain.RouterAddress),
		Intermediate:         common.HexToAddress(cfg.Chain.IntermediateAddress),
		Stable:               common.HexToAddress(cfg.Chain.StableAddress),
		IntermediateDecimals: cfg.Chain.IntermediateDecimals,
	}
	app.quotes = quotesvc.NewService(cc, pairs, log.With("component", "quote"))
	app.pricing = pricingsvc.NewService(log.With("component", "pricing"))

	notifiers, err := buildNotifiers(cfg, log)
	if err != nil {
		cc.Close()
		return nil, err
	}

	style := botfmt.Style{
		IntermediateSymbol: cfg.Chain.IntermediateSymbol,
		ContractAddress:    pairs.Token.Hex(),
		ThumbnailURL:       cfg.Discord.ThumbnailURL,
		Color:              cfg.Discord.Color,
	}
	render := func(r domain.PriceReport) domain.Notification {
		return botfmt.FormatPriceUpdate(r, style)
	}
	app.notify = notifysvc.NewService(app.quotes, app.pricing, render, notifiers, log.With("component", "notify"))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	app.e = e

	ph := httptransport.NewPriceHandler(log.With("component", "http"), app.notify, cfg.Server.RequestTimeout)
	ph.RegisterRoutes(e)

	app.serv = &http.Server{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      e,
	}

	if cfg.Scheduler.Enabled {
		app.updater = scheduler.NewScheduler(app.notify, scheduler.Options{
			Interval:     cfg.Scheduler.Interval,
			CycleTimeout: cfg.Scheduler.CycleTimeout,
			RunOnStart:   cfg.Scheduler.RunOnStart,
		}, log.With("component", "scheduler"))
	}

	log.Info("app initialized",
		slog.String("token", pairs.Token.Hex()),
		slog.Int("notifiers", len(notifiers)),
		slog.Bool("scheduler_enabled", cfg.Scheduler.Enabled),
		slog.String("http_addr", cfg.Server.Addr),
	)
	return app, nil
}

// buildNotifiers - каналы уведомлений в порядке отправки: Discord, затем Telegram
func buildNotifiers(cfg config.Config, log *slog.Logger) ([]notifysvc.Notifier, error) {
	var out []notifysvc.Notifier

	if cfg.Discord.Enabled {
		out = append(out, discord.NewClient(discord.Config{
			BaseURL:   cfg.Discord.BaseURL,
			Token:     cfg.Discord.Token,
			ChannelID: cfg.Discord.ChannelID,
			UserAgent: cfg.Discord.UserAgent,
			Timeout:   cfg.Discord.Timeout,
		}, log.With("component", "discord")))
	}

	if cfg.Telegram.Enabled {
		tg, err := telegram.New(telegram.Config{
			Token:  cfg.Telegram.Token,
			ChatID: cfg.Telegram.ChatID,
		}, log.With("component", "telegram"))
		if err != nil {
			log.Error("telegram init failed", slog.String("error", err.Error()))
			return nil, err
		}
		out = append(out, tg)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("build notifiers: %w", notifysvc.ErrNoNotifiers)
	}
	return out, nil
}

func (a *App) Run(ctx context.Context) error {
	if a.updater != nil {
		a.log.Info("starting updater")
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.updater.Start(ctx)
		}()
	}

	a.log.Info("starting server", slog.String("addr", a.cfg.Server.Addr))
	go func() {
		if err := a.e.StartServer(a.serv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", slog.String("error", err.Error()))
		}
	}()
	<-ctx.Done()
	return a.Shutdown(context.Background())
}

func (a *App) Shutdown(ctx context.Context) error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// StartServer обслуживает a.serv, а e.Shutdown гасит только собственный e.Server
	if a.serv != nil {
		if err := a.serv.Shutdown(shCtx); err != nil {
			a.log.Error("http shutdown error", slog.String("error", err.Error()))
		}
	}

	// цикл в полёте ещё ходит в ноду, клиент закрываем только после него
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shCtx.Done():
		a.log.Warn("updater did not stop in time", slog.Duration("timeout", timeout))
	}

	if a.chain != nil {
		a.chain.Close()
	}

	a.log.Info("application stopped")
	return nil
}
