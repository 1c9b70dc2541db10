package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var Backend = struct {
	Local  string
	Remote string
}{
	Local:  "local",
	Remote: "remote",
}

var LocalKV = struct {
	File   string
	SQLite string
	Redis  string
	Memory string
}{
	File:   "file",
	SQLite: "sqlite",
	Redis:  "redis",
	Memory: "memory",
}

var AssetStore = struct {
	Disk string
	S3   string
	None string
}{
	Disk: "disk",
	S3:   "s3",
	None: "none",
}

type Config struct {
	Environment string `toml:"-"`

	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// timezone for log dates and daily completion, e.g. "Europe/Berlin"
	Timezone string `toml:"timezone"`

	// persistence
	Backend   string `toml:"backend"`
	LocalKV   string `toml:"local_kv"`
	DataDir   string `toml:"data_dir"`
	KeyPrefix string `toml:"key_prefix"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost string `toml:"postgres_host"`
	PostgresPort string `toml:"postgres_port"`
	PostgresDB   string `toml:"postgres_db"`
	PostgresUser string `toml:"postgres_user"`
	UserID       string `toml:"user_id"`

	SyncDebounce string `toml:"sync_debounce"`

	// exercise images
	Assets        string `toml:"assets"`
	AssetsDir     string `toml:"assets_dir"`
	AssetsBaseURL string `toml:"assets_base_url"`
	S3Bucket      string `toml:"s3_bucket"`
	S3Region      string `toml:"s3_region"`
	// local image references are only uploaded from inside this dir
	StagingDir string `toml:"staging_dir"`

	// api
	RateLimitPerMin int      `toml:"rate_limit_per_min"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	TracingEnabled  bool     `toml:"tracing_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = strings.ToLower(env)
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env, with
// defaults applied and validated.
func Load(env, path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return Parse(env, string(content))
}

func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.Backend == "" {
		c.Backend = Backend.Local
	}
	if c.LocalKV == "" {
		c.LocalKV = LocalKV.File
	}
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.Assets == "" {
		c.Assets = AssetStore.None
	}
	if c.SyncDebounce == "" {
		c.SyncDebounce = "800ms"
	}
	if c.UserID == "" {
		c.UserID = "default"
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case Backend.Local:
		switch c.LocalKV {
		case LocalKV.File, LocalKV.SQLite, LocalKV.Redis, LocalKV.Memory:
		default:
			return fmt.Errorf("unknown local_kv: %s", c.LocalKV)
		}
	case Backend.Remote:
		if c.PostgresHost == "" || c.PostgresDB == "" {
			return fmt.Errorf("remote backend needs postgres_host and postgres_db")
		}
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}

	switch c.Assets {
	case AssetStore.None:
	case AssetStore.Disk:
		if c.AssetsDir == "" {
			return fmt.Errorf("disk assets need assets_dir")
		}
	case AssetStore.S3:
		if c.S3Bucket == "" || c.S3Region == "" {
			return fmt.Errorf("s3 assets need s3_bucket and s3_region")
		}
	default:
		return fmt.Errorf("unknown assets: %s", c.Assets)
	}

	if _, err := c.SyncDebounceDuration(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RateLimitPerMin < 0 {
		return fmt.Errorf("rate_limit_per_min must not be negative")
	}

	return nil
}

func (c *Config) SyncDebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.SyncDebounce)
	if err != nil {
		return 0, fmt.Errorf("parse sync_debounce: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("sync_debounce must be positive")
	}
	return d, nil
}

// Location resolves Timezone, falling back to the machine local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

// RedisEnabled reports whether any component needs the redis client.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != "" && (c.RateLimitPerMin > 0 || (c.Backend == Backend.Local && c.LocalKV == LocalKV.Redis))
}
