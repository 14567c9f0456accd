// Package cli assembles the standard command-line surface for services
// built on the query engine: configuration loading, logger setup, and the
// shared migrate subcommands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/querykit/querykit/pkg/config"
	"github.com/querykit/querykit/pkg/observability/logger"
)

// ServiceCommandOptions defines callbacks for service-specific logic.
type ServiceCommandOptions struct {
	Name        string
	Description string
	ConfigPath  string
	EnvPrefix   string

	// Optional: migration logic, wired under "migrate up|down|status".
	RunMigrations func(ctx context.Context, cfg *config.Config, log logger.Logger, direction string, args []string) error

	// Optional: custom config validation, runs after the built-in validation.
	ValidateConfig func(cfg *config.Config) error

	// Optional: additional service commands. Each receives the loaded
	// configuration and logger through LoadFromCommand.
	CustomCommands []*cobra.Command
}

// NewServiceCommand creates a CLI with config handling, a migrate command
// tree, and any service-specific commands.
func NewServiceCommand(opts ServiceCommandOptions) *cobra.Command {
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "QUERYKIT"
	}

	rootCmd := &cobra.Command{
		Use:           opts.Name,
		Short:         opts.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var cfgPath string
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config-file", "c", opts.ConfigPath, "config file path")

	loadConfig := func(flags *pflag.FlagSet) (*config.Config, logger.Logger, error) {
		return loadConfigAndLogger(cfgPath, opts.EnvPrefix, opts.ValidateConfig, flags)
	}
	rootCmd.SetContext(withLoader(context.Background(), loadConfig))

	if opts.RunMigrations != nil {
		migrateCmd := &cobra.Command{
			Use:   "migrate",
			Short: "Database migration commands",
		}

		for _, direction := range []struct {
			use   string
			short string
		}{
			{use: "up", short: "Run pending migrations"},
			{use: "down", short: "Rollback applied migrations"},
			{use: "status", short: "Show migration status"},
		} {
			direction := direction
			migrateCmd.AddCommand(&cobra.Command{
				Use:   direction.use,
				Short: direction.short,
				RunE: func(cmd *cobra.Command, args []string) error {
					cfg, log, err := loadConfig(cmd.Flags())
					if err != nil {
						return err
					}
					return opts.RunMigrations(cmd.Context(), cfg, log, direction.use, args)
				},
			})
		}
		rootCmd.AddCommand(migrateCmd)
	}

	rootCmd.AddCommand(opts.CustomCommands...)

	return rootCmd
}

// Execute runs the command under a signal-aware context and exits non-zero
// on failure.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(rootCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", rootCmd.Use, err)
		os.Exit(1)
	}
}

type loaderKey struct{}

type configLoader func(flags *pflag.FlagSet) (*config.Config, logger.Logger, error)

func withLoader(ctx context.Context, load configLoader) context.Context {
	return context.WithValue(ctx, loaderKey{}, load)
}

// LoadFromCommand resolves the service configuration and logger inside a
// custom command's RunE, honoring the root command's --config-file flag.
func LoadFromCommand(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	load, ok := cmd.Context().Value(loaderKey{}).(configLoader)
	if !ok {
		return nil, nil, fmt.Errorf("command is not attached to a service command tree")
	}
	return load(cmd.Flags())
}

func loadConfigAndLogger(cfgPath, envPrefix string, validate func(*config.Config) error, flags *pflag.FlagSet) (*config.Config, logger.Logger, error) {
	provider := config.NewProvider(cfgPath, envPrefix)
	if flags != nil {
		provider.BindFlags(flags)
	}

	var cfg config.Config
	if err := provider.Load(&cfg); err != nil {
		return nil, nil, err
	}
	if validate != nil {
		if err := validate(&cfg); err != nil {
			return nil, nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	level, err := logger.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := logger.ParseLogFormat(cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &cfg, log, nil
}
