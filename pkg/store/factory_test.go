package store

import (
	"context"
	"testing"
	"time"

	"github.com/querykit/querykit/pkg/config"
	"github.com/querykit/querykit/pkg/observability/logger"
)

func TestNewAdapter_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:       "sqlite",
		URL:          ":memory:",
		QueryTimeout: 5 * time.Second,
	}

	adapter, err := NewAdapter(cfg, logger.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewAdapter() error: %v", err)
	}
	defer adapter.Close()

	if err := adapter.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestNewAdapter_DriverAliases(t *testing.T) {
	for _, driver := range []string{"sqlite3", " SQLITE "} {
		cfg := config.DatabaseConfig{Driver: driver, URL: ":memory:"}
		adapter, err := NewAdapter(cfg, logger.NewNoopLogger())
		if err != nil {
			t.Errorf("NewAdapter(%q) error: %v", driver, err)
			continue
		}
		_ = adapter.Close()
	}
}

func TestNewAdapter_UnsupportedDriver(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: "oracle", URL: "oracle://db"}
	if _, err := NewAdapter(cfg, logger.NewNoopLogger()); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
