package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/mateorivas/brewcart/internal/api"
	"github.com/mateorivas/brewcart/internal/cart"
	"github.com/mateorivas/brewcart/internal/checkout"
	"github.com/mateorivas/brewcart/internal/kv"
	"github.com/mateorivas/brewcart/internal/session"
	"github.com/mateorivas/brewcart/pkg/config"
	"github.com/mateorivas/brewcart/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	store, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to open profile store", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logg.Error(ctx, "error closing profile store", err)
		}
	}()

	sessions, err := session.NewManager(store)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	carts, err := cart.NewService(store)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTokenSource(sessions),
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)
	if err != nil {
		logg.Error(ctx, "failed to create order service client", err)
		os.Exit(1)
	}

	orders, err := checkout.NewService(carts, client, logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"api":     cfg.API.BaseURL,
		"backend": cfg.Store.Backend,
	})
	logg.Info(ctx, "starting storefront")

	app := newApp(logg, client, carts, sessions, orders, os.Stdin, os.Stdout)
	if err := app.run(ctx); err != nil {
		logg.Error(ctx, "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}
