package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/ponto/internal/config"
	"github.com/mcoot/ponto/internal/gateway"
	"github.com/mcoot/ponto/internal/ponto"
	"github.com/mcoot/ponto/internal/session"
	"github.com/mcoot/ponto/internal/storage"
	"github.com/mcoot/ponto/internal/storage/file"
	"github.com/mcoot/ponto/internal/storage/memory"
	redisstorage "github.com/mcoot/ponto/internal/storage/redis"
	sqlitestorage "github.com/mcoot/ponto/internal/storage/sqlite"
)

// Client contains the wired client stack
type Client struct {
	Store       storage.Store
	Credentials *storage.Credentials
	Session     *session.Controller
	Gateway     *gateway.Gateway
	API         *ponto.Client
}

// ClientConfig holds configuration for building a client
type ClientConfig struct {
	Config    *config.Config
	Navigator session.Navigator
	Notifier  session.Notifier
	// Logger is the client logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// HTTPClient overrides the transport (optional)
	HTTPClient *http.Client
}

// NewClient builds the credential store, session controller, gateway and API
// client from configuration
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Config == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Navigator == nil || cfg.Notifier == nil {
		return nil, errors.New("navigator and notifier are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := NewStore(cfg.Config.Store)
	if err != nil {
		return nil, err
	}

	return newClientWithStore(store, cfg.Config.Server, cfg.Navigator, cfg.Notifier, cfg.HTTPClient, logger), nil
}

func newClientWithStore(store storage.Store, server config.ServerEndpoint, nav session.Navigator, notifier session.Notifier, httpClient *http.Client, logger *slog.Logger) *Client {
	creds := storage.NewCredentials(store)
	ctrl := session.NewController(creds, nav, notifier, logger)
	gw := gateway.New(gateway.Config{
		BaseURL:    server.URL,
		Timeout:    server.Timeout,
		HTTPClient: httpClient,
	}, creds, ctrl, logger)

	return &Client{
		Store:       store,
		Credentials: creds,
		Session:     ctrl,
		Gateway:     gw,
		API:         ponto.NewClient(gw, ctrl),
	}
}

// Close releases the credential store
func (c *Client) Close() error {
	return c.Store.Close()
}

// NewStore opens the credential store selected by cfg.Type
func NewStore(cfg config.StoreConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.TypeMemory, "":
		return memory.New(), nil
	case storage.TypeFile:
		store, err := file.New(cfg.File.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case storage.TypeSQLite:
		store, err := sqlitestorage.New(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case storage.TypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		if cfg.Redis.KeyPrefix != "" {
			redisCfg.KeyPrefix = cfg.Redis.KeyPrefix
		}
		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid store type %q", cfg.Type)
	}
}
