// Package config loads process configuration from an optional file and FORUMUL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FORUMUL_DATABASE_URL
const EnvPrefix = "FORUMUL"

// Store backends
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config validation errors
var (
	// ErrMissingDatabaseURL is returned when the postgres store has no DSN
	ErrMissingDatabaseURL = errors.New("database.url is required when store is postgres")
	// ErrInvalidStore is returned for an unknown store backend
	ErrInvalidStore = errors.New("store must be postgres or memory")
	// ErrInvalidDriver is returned for an unknown database driver
	ErrInvalidDriver = errors.New("database.driver must be postgres or pgx")
	// ErrInvalidUploadLimit is returned when media.max_upload_mb is not positive
	ErrInvalidUploadLimit = errors.New("media.max_upload_mb must be positive")
	// ErrInvalidRateLimit is returned when rate limit settings are not positive
	ErrInvalidRateLimit = errors.New("ratelimit.requests_per_minute and ratelimit.burst must be positive")
	// ErrInvalidLogLevel is returned for an unknown log level
	ErrInvalidLogLevel = errors.New("log.level must be debug, info, warn or error")
)

// Config is the full process configuration
type Config struct {
	Store     string          `mapstructure:"store"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	Log       LogConfig       `mapstructure:"log"`
	Media     MediaConfig     `mapstructure:"media"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// HTTPConfig configures the API listener
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig selects the driver and DSN for the postgres store
type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"`
	URL     string `mapstructure:"url"`
	Migrate bool   `mapstructure:"migrate"`
}

// S3Config configures the image blob store. An empty endpoint with no access key
// falls back to the default AWS credential chain.
type S3Config struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Region        string        `mapstructure:"region"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	Bucket        string        `mapstructure:"bucket"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	PresignTTL    time.Duration `mapstructure:"presign_ttl"`
	UsePathStyle  bool          `mapstructure:"use_path_style"`
}

// MediaConfig bounds image uploads
type MediaConfig struct {
	MaxUploadMB int `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes returns the upload limit in bytes
func (m MediaConfig) MaxUploadBytes() int64 {
	return int64(m.MaxUploadMB) << 20
}

// RateLimitConfig is the per-client token bucket
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// LogConfig selects slog level and handler format
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store", StorePostgres)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrate", true)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.bucket", "post-images")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.presign_ttl", 168*time.Hour)
	v.SetDefault("s3.use_path_style", true)
	v.SetDefault("media.max_upload_mb", 6)
	v.SetDefault("ratelimit.requests_per_minute", 100)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration. path may be empty, in which case only defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all invariants are satisfied
func (c *Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
		if c.Database.Driver != "postgres" && c.Database.Driver != "pgx" {
			return fmt.Errorf("%w: got %q", ErrInvalidDriver, c.Database.Driver)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidStore, c.Store)
	}

	if c.Media.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUploadLimit, c.Media.MaxUploadMB)
	}
	if c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return ErrInvalidRateLimit
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: got %q", ErrInvalidLogLevel, l.Level)
	}
}
