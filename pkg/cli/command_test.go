package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/querykit/querykit/pkg/config"
	"github.com/querykit/querykit/pkg/observability/logger"
)

func TestNewServiceCommand_CustomCommandLoadsConfig(t *testing.T) {
	t.Setenv("TESTSVC_DATABASE_DRIVER", "sqlite")
	t.Setenv("TESTSVC_DATABASE_URL", ":memory:")

	var loaded *config.Config
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := LoadFromCommand(cmd)
			if err != nil {
				return err
			}
			log.Debug("probe ran")
			loaded = cfg
			return nil
		},
	}

	root := NewServiceCommand(ServiceCommandOptions{
		Name:           "testsvc",
		Description:    "test service",
		EnvPrefix:      "TESTSVC",
		CustomCommands: []*cobra.Command{probe},
	})
	root.SetArgs([]string{"probe"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if loaded == nil {
		t.Fatal("custom command did not receive configuration")
	}
	if loaded.Database.Driver != "sqlite" || loaded.Database.URL != ":memory:" {
		t.Errorf("unexpected database config: %+v", loaded.Database)
	}
}

func TestNewServiceCommand_MigrateTree(t *testing.T) {
	t.Setenv("TESTSVC_DATABASE_DRIVER", "sqlite")
	t.Setenv("TESTSVC_DATABASE_URL", ":memory:")

	var gotDirection string
	root := NewServiceCommand(ServiceCommandOptions{
		Name:      "testsvc",
		EnvPrefix: "TESTSVC",
		RunMigrations: func(ctx context.Context, cfg *config.Config, log logger.Logger, direction string, args []string) error {
			gotDirection = direction
			return nil
		},
	})
	root.SetArgs([]string{"migrate", "status"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if gotDirection != "status" {
		t.Errorf("direction = %q, want status", gotDirection)
	}
}

func TestNewServiceCommand_NoMigrationsMeansNoMigrateCommand(t *testing.T) {
	root := NewServiceCommand(ServiceCommandOptions{Name: "testsvc"})
	for _, cmd := range root.Commands() {
		if cmd.Use == "migrate" {
			t.Error("migrate command registered without a RunMigrations callback")
		}
	}
}

func TestNewServiceCommand_ValidateConfigRejects(t *testing.T) {
	t.Setenv("TESTSVC_DATABASE_DRIVER", "sqlite")
	t.Setenv("TESTSVC_DATABASE_URL", ":memory:")

	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := LoadFromCommand(cmd)
			return err
		},
	}
	root := NewServiceCommand(ServiceCommandOptions{
		Name:      "testsvc",
		EnvPrefix: "TESTSVC",
		ValidateConfig: func(cfg *config.Config) error {
			return context.DeadlineExceeded
		},
		CustomCommands: []*cobra.Command{probe},
	})
	root.SetArgs([]string{"probe"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected custom validation error")
	}
}
