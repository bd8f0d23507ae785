package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"table-ops-api/internal/config"
	"table-ops-api/internal/dispatch"
	"table-ops-api/internal/itemstore"
)

// Container holds all application dependencies. It is built once per
// process (in Lambda, once per warm execution environment) and shared by
// every invocation.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Store      itemstore.Store
	Dispatcher *dispatch.Dispatcher
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	store, err := itemstore.NewStore(ctx, &itemstore.Config{
		Type:         cfg.Store.Type,
		Region:       cfg.Store.Region,
		Endpoint:     cfg.Store.Endpoint,
		SQLitePath:   cfg.Store.SQLitePath,
		KeyAttribute: cfg.Store.KeyAttribute,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create item store: %w", err)
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Dispatcher: dispatch.New(store, logger),
	}, nil
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
