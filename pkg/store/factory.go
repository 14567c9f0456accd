package store

import (
	"fmt"
	"strings"

	"github.com/querykit/querykit/pkg/config"
	"github.com/querykit/querykit/pkg/observability/logger"
	"github.com/querykit/querykit/pkg/store/mysql"
	"github.com/querykit/querykit/pkg/store/postgres"
	"github.com/querykit/querykit/pkg/store/sqlite"
)

// NewAdapter selects and initializes a relational store adapter from
// configuration. It does not manage fallback between drivers.
func NewAdapter(cfg config.DatabaseConfig, log logger.Logger) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "postgres", "postgresql":
		return postgres.NewAdapter(postgres.Config{
			URL:             cfg.URL,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			QueryTimeout:    cfg.QueryTimeout,
		}, log)
	case "mysql":
		return mysql.NewAdapter(mysql.Config{
			URL:             cfg.URL,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			QueryTimeout:    cfg.QueryTimeout,
		}, log)
	case "sqlite", "sqlite3":
		return sqlite.NewAdapter(sqlite.Config{
			URL:          cfg.URL,
			QueryTimeout: cfg.QueryTimeout,
		}, log)
	default:
		return nil, fmt.Errorf("unsupported database.driver %q (supported: postgres, mysql, sqlite)", cfg.Driver)
	}
}
