package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/querykit/querykit/pkg/observability/logger"
	"github.com/querykit/querykit/pkg/query"
	"github.com/querykit/querykit/pkg/testutil"
)

// TestAdapter_Integration runs the adapter and the query engine against a
// real PostgreSQL instance using testcontainers.
func TestAdapter_Integration(t *testing.T) {
	testutil.RequireIntegration(t)

	ctx := context.Background()

	pgContainer, err := pgcontainer.Run(ctx,
		"postgres:17-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	log, err := logger.NewZapLogger(logger.Config{
		Level:  logger.InfoLevel,
		Format: logger.JSONFormat,
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	cfg := Config{
		URL:             connStr,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		QueryTimeout:    10 * time.Second,
	}

	adapter, err := NewAdapter(cfg, log)
	if err != nil {
		t.Fatalf("Failed to create adapter: %v", err)
	}
	defer adapter.Close()

	t.Run("PoolSettings", func(t *testing.T) {
		stats := adapter.DB().Stats()
		if stats.MaxOpenConnections != cfg.MaxOpenConns {
			t.Errorf("Expected MaxOpenConnections=%d, got %d", cfg.MaxOpenConns, stats.MaxOpenConnections)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := adapter.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("HealthCheck", func(t *testing.T) {
		if err := adapter.HealthCheck(ctx); err != nil {
			t.Errorf("HealthCheck failed: %v", err)
		}
	})

	t.Run("WithTransaction", func(t *testing.T) {
		_, err := adapter.ExecContext(ctx, `CREATE TABLE tx_probe (id INT PRIMARY KEY)`)
		if err != nil {
			t.Fatalf("create table: %v", err)
		}

		err = adapter.WithTransaction(ctx, func(txCtx context.Context) error {
			_, err := adapter.ExecContext(txCtx, `INSERT INTO tx_probe (id) VALUES (1)`)
			return err
		})
		if err != nil {
			t.Fatalf("transaction failed: %v", err)
		}

		err = adapter.WithTransaction(ctx, func(txCtx context.Context) error {
			if _, err := adapter.ExecContext(txCtx, `INSERT INTO tx_probe (id) VALUES (2)`); err != nil {
				return err
			}
			return fmt.Errorf("force rollback")
		})
		if err == nil {
			t.Fatal("expected rollback error")
		}

		var count int
		if err := adapter.QueryRowContext(ctx, `SELECT COUNT(*) FROM tx_probe`).Scan(&count); err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 committed row, got %d", count)
		}
	})

	t.Run("WindowedPagination", func(t *testing.T) {
		_, err := adapter.ExecContext(ctx, `CREATE TABLE users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`)
		if err != nil {
			t.Fatalf("create users table: %v", err)
		}

		for i := 1; i <= 25; i++ {
			_, err := adapter.ExecContext(ctx,
				`INSERT INTO users (id, email) VALUES ($1, $2)`,
				uuid.New(), fmt.Sprintf("u%02d@example.com", i),
			)
			if err != nil {
				t.Fatalf("insert user %d: %v", i, err)
			}
		}

		e := query.NewExecutor(adapter, query.Postgres, query.WithLogger(log))
		base := query.NewSelect(query.Postgres, "users", "id", "email").
			OrderBy("email", query.Asc)

		type userRow struct {
			ID    uuid.UUID
			Email string
		}
		scan := func(scan func(dest ...any) error) (userRow, error) {
			var u userRow
			err := scan(&u.ID, &u.Email)
			return u, err
		}

		page := int64(3)
		pageSize := int64(10)
		result, err := query.FetchPage(ctx, e, base, query.PageRequest{Page: &page, PageSize: &pageSize}, scan)
		if err != nil {
			t.Fatalf("FetchPage failed: %v", err)
		}

		if len(result.Records) != 5 {
			t.Errorf("expected 5 records on the last page, got %d", len(result.Records))
		}
		if result.Total != 25 {
			t.Errorf("expected total 25, got %d", result.Total)
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", result.TotalPages)
		}
		if len(result.Records) > 0 && result.Records[0].Email != "u21@example.com" {
			t.Errorf("unexpected first record on last page: %+v", result.Records[0])
		}
	})
}
