package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*Config](NewConfig),
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config holds the application configuration.
type Config struct {
	HTTPAddress  string
	StoreDriver  string
	RedisAddr    string
	RedisDB      int
	RedisPrefix  string
	StoreWorkers int
	SeedOnStart  bool
	LogLevel     string
	LogEnv       string
}

// NewConfig creates a new configuration from environment variables (for DI).
func NewConfig(_ do.Injector) (*Config, error) {
	return New()
}

// New creates a new configuration from environment variables.
// Variables already set in the environment win over the .env file.
func New() (*Config, error) {
	envFile := getEnv("USERGRID_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	driver := strings.ToLower(getEnv("USERGRID_STORE_DRIVER", DriverMemory))
	if driver != DriverMemory && driver != DriverRedis {
		return nil, fmt.Errorf("USERGRID_STORE_DRIVER must be %q or %q, got %q", DriverMemory, DriverRedis, driver)
	}

	redisDB, err := getInt("USERGRID_REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	workers, err := getInt("USERGRID_STORE_WORKERS", 8)
	if err != nil {
		return nil, err
	}

	if workers < 1 {
		return nil, errors.New("USERGRID_STORE_WORKERS must be at least 1")
	}

	seed, err := getBool("USERGRID_SEED_ON_START", true)
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPAddress:  getEnv("USERGRID_HTTP_ADDRESS", ":8080"),
		StoreDriver:  driver,
		RedisAddr:    getEnv("USERGRID_REDIS_ADDR", "localhost:6379"),
		RedisDB:      redisDB,
		RedisPrefix:  getEnv("USERGRID_REDIS_PREFIX", "exampleCache"),
		StoreWorkers: workers,
		SeedOnStart:  seed,
		LogLevel:     getEnv("USERGRID_LOG_LEVEL", "info"),
		LogEnv:       getEnv("USERGRID_LOG_ENV", "dev"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}

	return v, nil
}
