// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Session backend names.
const (
	SessionCache  = "cache"
	SessionMemory = "memory"
	SessionRedis  = "redis"
	SessionNone   = "none"
)

// Durable backend names.
const (
	DurableSQLite = "sqlite"
	DurableFile   = "file"
	DurableNone   = "none"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	Vault   VaultConfig   `toml:"vault"`
	UI      UIConfig      `toml:"ui"`
	Sound   SoundConfig   `toml:"sound"`
}

// GridConfig holds the inventory dimensions.
type GridConfig struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	CellSize int `toml:"cell_size"` // pixel size for pixel-space hosts
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Session    string `toml:"session"` // "cache", "memory", "redis", "none"
	SessionKey string `toml:"session_key"`
	CacheDir   string `toml:"cache_dir"`
	RedisAddr  string `toml:"redis_addr"`
	RedisDB    int    `toml:"redis_db"`
	SessionTTL string `toml:"session_ttl"` // e.g., "24h"
	Durable    string `toml:"durable"`     // "sqlite", "file", "none"
	DBPath     string `toml:"db_path"`
	FilePath   string `toml:"file_path"`
}

// VaultConfig points at an optional item vault file.
type VaultConfig struct {
	Path string `toml:"path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme      string `toml:"theme"` // "mocha", "latte"
	CellWidth  int    `toml:"cell_width"`
	CellHeight int    `toml:"cell_height"`
	MarginX    int    `toml:"margin_x"`
	MarginY    int    `toml:"margin_y"`
}

// SoundConfig controls pickup and drop cues.
type SoundConfig struct {
	Enabled bool `toml:"enabled"`
	Bell    bool `toml:"bell"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:    10,
			Height:   10,
			CellSize: 40,
		},
		Storage: StorageConfig{
			Session:    SessionCache,
			SessionKey: "dndInventory",
			CacheDir:   defaultCacheDir(),
			RedisAddr:  "localhost:6379",
			SessionTTL: "24h",
			Durable:    DurableSQLite,
			DBPath:     defaultDataPath("satchel.db"),
			FilePath:   defaultDataPath("inventory_save.json"),
		},
		UI: UIConfig{
			Theme:      "mocha",
			CellWidth:  6,
			CellHeight: 3,
			MarginX:    2,
			MarginY:    1,
		},
		Sound: SoundConfig{
			Enabled: true,
		},
	}
}

// defaultDataPath returns a path under the user's data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "satchel", name)
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".satchel-cache"
	}
	return filepath.Join(home, ".cache", "satchel")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "satchel", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.CacheDir = expandPath(cfg.Storage.CacheDir)
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.FilePath = expandPath(cfg.Storage.FilePath)
	cfg.Vault.Path = expandPath(cfg.Vault.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Grid overrides
	if v := os.Getenv("SATCHEL_GRID_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SATCHEL_GRID_WIDTH: %w", err)
		}
		cfg.Grid.Width = n
	}
	if v := os.Getenv("SATCHEL_GRID_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SATCHEL_GRID_HEIGHT: %w", err)
		}
		cfg.Grid.Height = n
	}

	// Storage overrides
	if v := os.Getenv("SATCHEL_SESSION"); v != "" {
		cfg.Storage.Session = v
	}
	if v := os.Getenv("SATCHEL_SESSION_KEY"); v != "" {
		cfg.Storage.SessionKey = v
	}
	if v := os.Getenv("SATCHEL_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("SATCHEL_DURABLE"); v != "" {
		cfg.Storage.Durable = v
	}
	if v := os.Getenv("SATCHEL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SATCHEL_FILE_PATH"); v != "" {
		cfg.Storage.FilePath = v
	}

	if v := os.Getenv("SATCHEL_VAULT_PATH"); v != "" {
		cfg.Vault.Path = v
	}

	// UI overrides
	if v := os.Getenv("SATCHEL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	if v := os.Getenv("SATCHEL_SOUND"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SATCHEL_SOUND: %w", err)
		}
		cfg.Sound.Enabled = on
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.CellSize <= 0 {
		return errors.New("cell_size must be positive")
	}
	// A one-column cell leaves no room for an item's border and body.
	if c.UI.CellWidth < 2 || c.UI.CellHeight < 2 {
		return errors.New("cell_width and cell_height must be at least 2")
	}
	if c.UI.MarginX < 0 || c.UI.MarginY < 0 {
		return errors.New("margins cannot be negative")
	}

	switch c.Storage.Session {
	case SessionCache:
		if c.Storage.CacheDir == "" {
			return errors.New("cache_dir must be set for the cache session store")
		}
	case SessionRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("redis_addr must be set for the redis session store")
		}
	case SessionMemory, SessionNone:
	default:
		return fmt.Errorf("invalid session store: %q", c.Storage.Session)
	}
	if c.Storage.Session != SessionNone && c.Storage.SessionKey == "" {
		return errors.New("session_key must be set")
	}
	if _, err := c.SessionTTL(); err != nil {
		return err
	}

	switch c.Storage.Durable {
	case DurableSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case DurableFile:
		if c.Storage.FilePath == "" {
			return errors.New("file_path must be set")
		}
	case DurableNone:
	default:
		return fmt.Errorf("invalid durable store: %q", c.Storage.Durable)
	}

	return nil
}

// SessionTTL parses session_ttl. An empty value means no expiry.
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Storage.SessionTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Storage.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("session_ttl must be a duration, got %q", c.Storage.SessionTTL)
	}
	if d < 0 {
		return 0, fmt.Errorf("session_ttl cannot be negative, got %q", c.Storage.SessionTTL)
	}
	return d, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
