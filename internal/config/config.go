// Package config loads ponto settings from an optional YAML file and the
// environment using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mcoot/ponto/internal/logging"
	"github.com/mcoot/ponto/internal/storage"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the client configuration
type Config struct {
	Server  ServerEndpoint `mapstructure:"server"`
	Store   StoreConfig    `mapstructure:"store"`
	Logging LoggingConfig  `mapstructure:"logging"`
	Output  string         `mapstructure:"output"`
}

// ServerEndpoint locates the backend
type ServerEndpoint struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects and configures the credential store
type StoreConfig struct {
	Type   string      `mapstructure:"type"`
	File   FileStore   `mapstructure:"file"`
	SQLite SQLiteStore `mapstructure:"sqlite"`
	Redis  RedisStore  `mapstructure:"redis"`
}

// FileStore configures the JSON file store
type FileStore struct {
	Path string `mapstructure:"path"`
}

// SQLiteStore configures the SQLite store
type SQLiteStore struct {
	Path string `mapstructure:"path"`
}

// RedisStore configures the Redis store
type RedisStore struct {
	URL       string `mapstructure:"url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads client configuration from cfgFile (or the default search path)
// and PONTO_* environment variables
func Load(cfgFile string) (*Config, error) {
	v := newViper("ponto", cfgFile)
	setDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for unsupported values
func (c *Config) Validate() error {
	var errs []error

	if c.Server.URL == "" {
		errs = append(errs, errors.New("server.url is required"))
	}

	types := []string{storage.TypeMemory, storage.TypeFile, storage.TypeSQLite, storage.TypeRedis}
	if !slices.Contains(types, c.Store.Type) {
		errs = append(errs, fmt.Errorf("store.type must be one of %s, got %q", strings.Join(types, ", "), c.Store.Type))
	}

	if c.Output != OutputText && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("output must be %s or %s, got %q", OutputText, OutputJSON, c.Output))
	}

	if err := c.Logging.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (l LoggingConfig) validate() error {
	if _, err := logging.ParseLevel(l.Level); err != nil {
		return err
	}
	if l.Format != logging.FormatText && l.Format != logging.FormatJSON {
		return fmt.Errorf("logging.format must be %s or %s, got %q", logging.FormatText, logging.FormatJSON, l.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	home := homeDir()

	v.SetDefault("server.url", "http://localhost:3000")
	v.SetDefault("server.timeout", time.Duration(0))

	v.SetDefault("store.type", storage.TypeFile)
	v.SetDefault("store.file.path", filepath.Join(home, ".ponto", "credentials.json"))
	v.SetDefault("store.sqlite.path", filepath.Join(home, ".ponto", "credentials.db"))
	v.SetDefault("store.redis.url", "redis://localhost:6379")
	v.SetDefault("store.redis.key_prefix", "ponto")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logging.FormatText)

	v.SetDefault("output", OutputText)
}

// newViper creates a Viper instance reading <name>.yaml and <NAME>_* env vars.
// Nested keys map to env vars with underscores, e.g. server.url -> PONTO_SERVER_URL.
func newViper(name, cfgFile string) *viper.Viper {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "ponto"))
	}

	v.SetEnvPrefix(strings.ToUpper(name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		// No config file, defaults and env only
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
