package server

import (
	"context"
	"testing"

	"table-ops-api/internal/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		LogLevel:    "debug",
		Store: config.StoreConfig{
			Type:         "memory",
			KeyAttribute: "id",
		},
	}
}

func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	defer container.Close()

	if container.Store == nil {
		t.Error("Store not initialized")
	}
	if container.Dispatcher == nil {
		t.Error("Dispatcher not initialized")
	}
	if container.Logger == nil {
		t.Error("Logger not initialized")
	}
}

func TestNewContainer_UnknownStoreType(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Type = "etcd"

	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Error("NewContainer() accepted an unknown store type")
	}
}

func TestContainer_CloseIsSafe(t *testing.T) {
	container, err := NewContainer(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	if err := container.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
