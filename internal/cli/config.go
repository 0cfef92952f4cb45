package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tobim/smartgraph/pkg/cache"
	"github.com/tobim/smartgraph/pkg/store"
)

// Config is the optional smartgraph.toml configuration. Every field has a
// working default, so the file is only needed to change backends.
type Config struct {
	// Listen is the HTTP listen address of the serve command.
	Listen string       `toml:"listen"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects the render-cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the file backend's directory. Defaults to the user cache dir.
	Dir string `toml:"dir"`
	// Redis is the redis backend's address, e.g. "localhost:6379".
	Redis string `toml:"redis"`
	// TTLMinutes is the lifetime of cached artifacts. Zero means no expiry.
	TTLMinutes int `toml:"ttl_minutes"`
}

// StoreConfig selects the diagram-store backend used by serve.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend string `toml:"backend"`
	// URI is the mongo connection string.
	URI string `toml:"uri"`
	// Database is the mongo database name.
	Database string `toml:"database"`
}

// RenderConfig sets render defaults, overridable per invocation.
type RenderConfig struct {
	Format   string `toml:"format"`
	Detailed bool   `toml:"detailed"`
}

func defaultConfig() Config {
	return Config{
		Listen: ":8080",
		Cache:  CacheConfig{Backend: "file"},
		Store:  StoreConfig{Backend: "memory", Database: appName},
		Render: RenderConfig{Format: "svg"},
	}
}

// loadConfig reads the config file. With an empty path it looks for
// smartgraph.toml in the working directory and falls back to defaults when
// there is none; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = appName + ".toml"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// openCache creates the configured cache backend.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Redis)
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = filepath.Join(base, appName)
		}
		return cache.NewFileCache(dir)
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// openStore creates the configured diagram-store backend.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, cfg.URI, cfg.Database)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
