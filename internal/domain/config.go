package domain

import (
	"time"
)

// Config represents the main application configuration.
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Annotation  AnnotationConfig `mapstructure:"annotation"`
	Upload      UploadConfig     `mapstructure:"upload"`
	Logging     LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	// RateLimit is requests per second per client; RateBurst the burst size.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// AnnotationConfig selects and tunes the annotation source backing the
// classifier. Backend is one of "memory", "sqlite" or "postgres".
type AnnotationConfig struct {
	Backend string `mapstructure:"backend"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `mapstructure:"sqlite_path"`

	// Database configures the postgres backend.
	Database DatabaseConfig `mapstructure:"database"`

	// Cache configures the caching decorator in front of the source.
	Cache CacheConfig `mapstructure:"cache"`

	// Breaker configures the circuit breaker around latent sources.
	Breaker BreakerConfig `mapstructure:"breaker"`

	// RandomSeed, when non-zero, makes the memory backend's fallback
	// deterministic. Zero seeds from the clock.
	RandomSeed int64 `mapstructure:"random_seed"`
}

// DatabaseConfig represents PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// CacheConfig represents the annotation cache configuration. The LRU tier
// is always on when the decorator is enabled; the Redis tier is optional.
type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	LRUSize     int           `mapstructure:"lru_size"`
	RedisURL    string        `mapstructure:"redis_url"`
	RedisTTL    time.Duration `mapstructure:"redis_ttl"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// BreakerConfig represents circuit breaker tuning for annotation lookups.
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxRequests uint32        `mapstructure:"max_requests"`
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
	// MinRequests and FailureRatio control when the breaker trips.
	MinRequests  uint32  `mapstructure:"min_requests"`
	FailureRatio float64 `mapstructure:"failure_ratio"`
}

// UploadConfig represents VCF upload validation configuration.
type UploadConfig struct {
	MaxFileSize    int64  `mapstructure:"max_file_size"`
	SampleFilePath string `mapstructure:"sample_file_path"`
	// DefaultTopN bounds the result set when the request does not override it.
	DefaultTopN int `mapstructure:"default_top_n"`
	MaxTopN     int `mapstructure:"max_top_n"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
