package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Provider loads configuration with precedence: defaults, then an optional
// config file, then environment variables prefixed with envPrefix
// (e.g. QUERYKIT_DATABASE_URL for database.url).
type Provider struct {
	configFile string
	envPrefix  string
	flags      *pflag.FlagSet
	v          *viper.Viper
}

// NewProvider creates a provider. configFile may be empty to skip file
// loading; envPrefix defaults to "QUERYKIT".
func NewProvider(configFile, envPrefix string) *Provider {
	if envPrefix == "" {
		envPrefix = "QUERYKIT"
	}
	return &Provider{
		configFile: configFile,
		envPrefix:  envPrefix,
		v:          viper.New(),
	}
}

// Load populates cfg from all sources and validates the result.
func (p *Provider) Load(cfg *Config) error {
	p.v = viper.New()

	defaults := DefaultConfig()
	p.v.SetDefault("logging.level", defaults.Logging.Level)
	p.v.SetDefault("logging.format", defaults.Logging.Format)
	p.v.SetDefault("database.driver", defaults.Database.Driver)
	p.v.SetDefault("database.url", defaults.Database.URL)
	p.v.SetDefault("database.max_open_conns", defaults.Database.MaxOpenConns)
	p.v.SetDefault("database.max_idle_conns", defaults.Database.MaxIdleConns)
	p.v.SetDefault("database.conn_max_lifetime", defaults.Database.ConnMaxLifetime)
	p.v.SetDefault("database.conn_max_idle_time", defaults.Database.ConnMaxIdleTime)
	p.v.SetDefault("database.query_timeout", defaults.Database.QueryTimeout)
	p.v.SetDefault("query.default_page_size", defaults.Query.DefaultPageSize)
	p.v.SetDefault("query.max_page_size", defaults.Query.MaxPageSize)

	if p.configFile != "" {
		p.v.SetConfigFile(p.configFile)
		if err := p.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", p.configFile, err)
		}
	}

	p.v.SetEnvPrefix(p.envPrefix)
	p.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	p.v.AutomaticEnv()

	if p.flags != nil {
		if err := p.v.BindPFlags(p.flags); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if cfg == nil {
		return fmt.Errorf("config target must not be nil")
	}
	if err := p.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// BindFlags merges values from a command-line flag set with the highest
// precedence. Flag names double as config keys, e.g. a "database.url" flag
// overrides that setting.
func (p *Provider) BindFlags(flags *pflag.FlagSet) {
	p.flags = flags
}

// ConfigFile returns the path of the file the provider reads, or empty.
func (p *Provider) ConfigFile() string {
	return p.configFile
}

// AllSettings returns the effective merged settings after a Load.
func (p *Provider) AllSettings() map[string]any {
	if p.v == nil {
		return map[string]any{}
	}
	return p.v.AllSettings()
}
