package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storefront/internal/api"
	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/storage"
)

// app holds what every command needs. Storage availability is probed once
// here and handed to the cart and auth helpers.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     storage.Store
	available bool
	client    *api.Client
	cart      *cart.Store
	auth      *auth.Helper
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) *app {
	logger = logging.OrNop(logger)

	store, err := storage.Open(cfg.StorageOptions(), logger)
	if err != nil {
		logger.Warn("⚠️ local storage could not be opened, cart and session will not be kept",
			zap.String("backend", cfg.Storage.Backend), zap.Error(err))
		store = storage.Unavailable{}
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	available := storage.Detect(probeCtx, store)
	cancel()
	if err == nil && !available && cfg.Storage.Backend != storage.BackendNone {
		logger.Warn("⚠️ local storage unavailable, cart and session will not be kept",
			zap.String("backend", cfg.Storage.Backend))
	}
	logger.Debug("storage ready", zap.String("backend", cfg.Storage.Backend), zap.Bool("available", available))

	return newAppWith(cfg, logger, store, available)
}

func newAppWith(cfg *config.Config, logger *zap.Logger, store storage.Store, available bool) *app {
	logger = logging.OrNop(logger)
	client := api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger))
	c := cart.New(store, available, cart.Options{Policy: cfg.CartPolicy(), Logger: logger})

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		available: available,
		client:    client,
		cart:      c,
		auth:      auth.New(store, available, c, client, logger),
	}
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close storage", zap.Error(err))
	}
}
