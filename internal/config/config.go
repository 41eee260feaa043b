package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Storage    StorageConfig
	Catalog    CatalogConfig
	Estimation EstimationConfig
	Client     ClientConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// StorageConfig selects the catalog backend
type StorageConfig struct {
	Driver   string // postgres or memory
	SeedFile string // optional YAML override for the embedded seed
}

// CatalogConfig holds catalog listing limits
type CatalogConfig struct {
	SimilarDefaultLimit int
	SimilarMaxLimit     int
}

// EstimationConfig holds estimation settings
type EstimationConfig struct {
	RemoteTimeout time.Duration
}

// ClientConfig holds settings for the builder CLI
type ClientConfig struct {
	APIBase      string
	StateDir     string
	SessionStore string // file or sqlite
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "home_construction"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnvAsList("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnvAsList("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Storage: StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", "postgres"),
			SeedFile: getEnv("STORAGE_SEED_FILE", ""),
		},
		Catalog: CatalogConfig{
			SimilarDefaultLimit: getEnvAsInt("SIMILAR_DEFAULT_LIMIT", 3),
			SimilarMaxLimit:     getEnvAsInt("SIMILAR_MAX_LIMIT", 10),
		},
		Estimation: EstimationConfig{
			RemoteTimeout: time.Duration(getEnvAsFloat("ESTIMATE_TIMEOUT_SECONDS", 5) * float64(time.Second)),
		},
		Client: ClientConfig{
			APIBase:      getEnv("BUILDER_API_BASE", "http://localhost:8080/api/v1"),
			StateDir:     getEnv("BUILDER_HOME", defaultStateDir()),
			SessionStore: getEnv("BUILDER_SESSION_STORE", "file"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	switch cfg.Storage.Driver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want postgres or memory)", cfg.Storage.Driver)
	}
	switch cfg.Client.SessionStore {
	case "file", "sqlite":
	default:
		return nil, fmt.Errorf("unknown BUILDER_SESSION_STORE %q (want file or sqlite)", cfg.Client.SessionStore)
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Debug reports whether debug logging is on
func (c *Config) Debug() bool {
	return strings.EqualFold(c.Logging.Level, "debug")
}

func defaultStateDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".buildmyhome"
	}
	return filepath.Join(dir, ".buildmyhome")
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key, defaultValue string) []string {
	parts := strings.Split(getEnv(key, defaultValue), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
