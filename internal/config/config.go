package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/genomic-vcf-service/internal/domain"
)

// Manager implements the ConfigManager interface using Viper.
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from file, environment and defaults.
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/genomic-vcf-service/")

	viper.SetEnvPrefix("VCF_SERVICE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values.
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.rate_limit", 20.0)
	viper.SetDefault("server.rate_burst", 40)

	// Annotation source defaults
	viper.SetDefault("annotation.backend", "memory")
	viper.SetDefault("annotation.sqlite_path", "data/annotations.db")
	viper.SetDefault("annotation.random_seed", 0)

	viper.SetDefault("annotation.database.host", "localhost")
	viper.SetDefault("annotation.database.port", 5432)
	viper.SetDefault("annotation.database.database", "genomic_vcf")
	viper.SetDefault("annotation.database.username", "postgres")
	viper.SetDefault("annotation.database.password", "")
	viper.SetDefault("annotation.database.ssl_mode", "disable")
	viper.SetDefault("annotation.database.max_open_conns", 25)
	viper.SetDefault("annotation.database.min_conns", 5)
	viper.SetDefault("annotation.database.conn_max_lifetime", "5m")
	viper.SetDefault("annotation.database.conn_max_idle_time", "1m")
	viper.SetDefault("annotation.database.migrations_path", "migrations")

	viper.SetDefault("annotation.cache.enabled", true)
	viper.SetDefault("annotation.cache.lru_size", 4096)
	viper.SetDefault("annotation.cache.redis_url", "")
	viper.SetDefault("annotation.cache.redis_ttl", "24h")
	viper.SetDefault("annotation.cache.dial_timeout", "4s")

	viper.SetDefault("annotation.breaker.enabled", false)
	viper.SetDefault("annotation.breaker.max_requests", 5)
	viper.SetDefault("annotation.breaker.interval", "60s")
	viper.SetDefault("annotation.breaker.timeout", "30s")
	viper.SetDefault("annotation.breaker.min_requests", 10)
	viper.SetDefault("annotation.breaker.failure_ratio", 0.6)

	// Upload defaults
	viper.SetDefault("upload.max_file_size", 100*1024*1024)
	viper.SetDefault("upload.sample_file_path", "data/sample_variants.vcf")
	viper.SetDefault("upload.default_top_n", 10)
	viper.SetDefault("upload.max_top_n", 100)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration.
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration.
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetAnnotationConfig returns annotation source configuration.
func (m *Manager) GetAnnotationConfig() *domain.AnnotationConfig {
	return &m.config.Annotation
}

// GetUploadConfig returns upload validation configuration.
func (m *Manager) GetUploadConfig() *domain.UploadConfig {
	return &m.config.Upload
}

// Validate validates the configuration.
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Server.RateLimit <= 0 {
		return fmt.Errorf("invalid rate limit: %f", config.Server.RateLimit)
	}

	switch config.Annotation.Backend {
	case "memory":
	case "sqlite":
		if config.Annotation.SQLitePath == "" {
			return fmt.Errorf("sqlite annotation backend requires sqlite_path")
		}
	case "postgres":
		db := config.Annotation.Database
		if db.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if db.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if db.Username == "" {
			return fmt.Errorf("database username is required")
		}
	default:
		return fmt.Errorf("unknown annotation backend: %s", config.Annotation.Backend)
	}

	if config.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("invalid max file size: %d", config.Upload.MaxFileSize)
	}
	if config.Upload.DefaultTopN <= 0 || config.Upload.DefaultTopN > config.Upload.MaxTopN {
		return fmt.Errorf("invalid default top-n: %d", config.Upload.DefaultTopN)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// GetDatabaseConnectionString returns a formatted postgres connection string.
func (m *Manager) GetDatabaseConnectionString() string {
	db := m.config.Annotation.Database
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.Username, db.Password, db.Database, db.SSLMode)
}

// GetDatabaseURL returns the postgres URL form used by the migration runner.
func (m *Manager) GetDatabaseURL() string {
	db := m.config.Annotation.Database
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.Username, db.Password, db.Host, db.Port, db.Database, db.SSLMode)
}

// IsProduction returns true if running in production mode.
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.config.Environment) == "production"
}
