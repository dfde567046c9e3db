package config

import (
	"errors"
	"fmt"
	"time"
)

// ServerConfig is the reference backend (pontod) configuration
type ServerConfig struct {
	Addr    string        `mapstructure:"addr"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Admin   AdminSeed     `mapstructure:"admin"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HTTPConfig holds the pontod listener timeouts
type HTTPConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig configures token issuing
type AuthConfig struct {
	// Secret signs tokens. Empty generates a random one at startup.
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// AdminSeed is the administrator created at startup, if Email is set
type AdminSeed struct {
	Nome     string `mapstructure:"nome"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// LoadServer reads pontod configuration from cfgFile (or the default search
// path) and PONTOD_* environment variables
func LoadServer(cfgFile string) (*ServerConfig, error) {
	v := newViper("pontod", cfgFile)

	v.SetDefault("addr", ":3000")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 8*time.Hour)
	v.SetDefault("admin.nome", "Administrador")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the server configuration
func (c *ServerConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		errs = append(errs, errors.New("http.read_timeout and http.write_timeout must be positive"))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http.shutdown_timeout must be positive"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		errs = append(errs, errors.New("admin.password is required when admin.email is set"))
	}
	if err := c.Logging.validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
