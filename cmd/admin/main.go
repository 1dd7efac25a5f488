package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/mateorivas/brewcart/internal/api"
	"github.com/mateorivas/brewcart/internal/kv"
	"github.com/mateorivas/brewcart/internal/session"
	"github.com/mateorivas/brewcart/pkg/config"
	"github.com/mateorivas/brewcart/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "admin",
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

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTokenSource(sessions),
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)
	if err != nil {
		logg.Error(ctx, "failed to create order service client", err)
		os.Exit(1)
	}

	// The admin console is gated on the locally persisted role. The order
	// service enforces its own checks on the Bearer endpoints.
	identity, err := sessions.Current(ctx)
	if err != nil {
		logg.Error(ctx, "no active session; log in through the storefront first", err)
		os.Exit(1)
	}
	if !identity.Role.IsAdmin() {
		logg.Error(ctx, "the signed-in user is not an admin", nil)
		os.Exit(1)
	}

	ctx = logg.WithUserID(ctx, identity.UserID)
	logg.Info(ctx, "starting admin console")

	app := newApp(logg, client, os.Stdin, os.Stdout)
	if err := app.run(ctx); err != nil {
		logg.Error(ctx, "admin console stopped unexpectedly", err)
		os.Exit(1)
	}
}
