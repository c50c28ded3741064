package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	Redis   RedisConfig
	Share   ShareConfig
	Log     LogConfig
}

// StorageConfig selects the durable slot backend.
type StorageConfig struct {
	Backend string // sqlite, redis, file or memory
	Path    string // sqlite database file
	Dir     string // file backend directory
	Slot    string
}

// RedisConfig holds settings for the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// ShareConfig controls share links.
type ShareConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	WarnBytes int    `mapstructure:"warn_bytes"`
}

// LogConfig holds logger settings. Logs go to a file because the TUI owns the terminal.
type LogConfig struct {
	Level string
	Path  string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "tiermaker")
}

// Path is the config file location: $TIERMAKER_CONFIG, or
// ~/.config/tiermaker/config.toml.
func Path() string {
	if p := os.Getenv("TIERMAKER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tiermaker", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", filepath.Join(dataDir(), "tiermaker.db"))
	v.SetDefault("storage.dir", filepath.Join(dataDir(), "slots"))
	v.SetDefault("storage.slot", "tierListState")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "tiermaker:")
	v.SetDefault("share.base_url", "https://tiermaker.local/")
	v.SetDefault("share.warn_bytes", 8000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "tiermaker", "tiermaker.log"))
}

// Default returns the built-in configuration, ignoring files and env.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from file and env. Env var overrides use prefix TIERMAKER_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("TIERMAKER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if _, err := os.Stat(Path()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("storage.slot", cfg.Storage.Slot)
	v.Set("redis.addr", cfg.Redis.Addr)
	v.Set("redis.password", cfg.Redis.Password)
	v.Set("redis.db", cfg.Redis.DB)
	v.Set("redis.prefix", cfg.Redis.Prefix)
	v.Set("share.base_url", cfg.Share.BaseURL)
	v.Set("share.warn_bytes", cfg.Share.WarnBytes)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
