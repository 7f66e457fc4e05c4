package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backend selectors
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	APIKey      string // API key for authentication

	// TrustedProxies lists proxy IPs whose X-Forwarded-For is honored
	TrustedProxies []string

	// Catalog
	ItemsConfigPath string

	// Storage
	StorageBackend string // "file" or "postgres"
	DataDir        string // file backend: directory for per-player save files

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Connection pool sizing; zero means the database package defaults
	DBMaxConns int
	DBMinConns int

	// Profile cache
	ProfileCacheSize int
	ProfileCacheTTL  int // seconds
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		ServiceName:     getEnv("SERVICE_NAME", "armory"),
		Version:         getEnv("VERSION", "dev"),
		APIKey:          getEnv("API_KEY", ""),
		ItemsConfigPath: getEnv("ITEMS_CONFIG", "configs/items.json"),
		StorageBackend:  getEnv("STORAGE_BACKEND", StorageFile),
		DataDir:         getEnv("DATA_DIR", "data"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "armory"),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cacheSize, err := getEnvInt("PROFILE_CACHE_SIZE", 1024)
	if err != nil {
		return nil, err
	}
	cfg.ProfileCacheSize = cacheSize

	cacheTTL, err := getEnvInt("PROFILE_CACHE_TTL", 300)
	if err != nil {
		return nil, err
	}
	cfg.ProfileCacheTTL = cacheTTL

	maxConns, err := getEnvInt("DB_MAX_CONNS", 0)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = maxConns

	minConns, err := getEnvInt("DB_MIN_CONNS", 0)
	if err != nil {
		return nil, err
	}
	cfg.DBMinConns = minConns

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid combinations
func (c *Config) Validate() error {
	if c.StorageBackend != StorageFile && c.StorageBackend != StoragePostgres {
		return fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q", c.StorageBackend, StorageFile, StoragePostgres)
	}
	if c.StorageBackend == StorageFile && c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must be set when STORAGE_BACKEND is %q", StorageFile)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
