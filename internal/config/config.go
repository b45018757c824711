package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends for round results, attempts and wallets
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

const defaultStartingBalanceDollars = 1000

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string

	// Storage
	StorageType string // "memory" or "sqlite"
	DataDir     string

	// Elasticsearch indexing is enabled when ESURL is set
	ESURL      string
	ESUsername string
	ESPassword string

	// HTTP API
	HTTPAddr string

	// Game
	StartingBalanceDollars int64

	LogLevel    string
	Environment string // "development" or "production"
}

// Load reads the configuration from a .env file, if present, and the
// environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := FromEnv(wd)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv builds a Config from environment variables with defaults. Paths
// default relative to wd.
func FromEnv(wd string) (*Config, error) {
	balance, err := getEnvInt("STARTING_BALANCE", defaultStartingBalanceDollars)
	if err != nil {
		return nil, err
	}

	return &Config{
		Token:                  os.Getenv("DISCORD_TOKEN"),
		AppID:                  os.Getenv("APP_ID"),
		GuildID:                os.Getenv("GUILD_ID"),
		StorageType:            getEnvWithDefault("STORAGE_TYPE", StorageMemory),
		DataDir:                getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		ESURL:                  os.Getenv("ES_URL"),
		ESUsername:             os.Getenv("ES_USERNAME"),
		ESPassword:             os.Getenv("ES_PASSWORD"),
		HTTPAddr:               getEnvWithDefault("HTTP_ADDR", ":8080"),
		StartingBalanceDollars: balance,
		LogLevel:               getEnvWithDefault("LOG_LEVEL", "INFO"),
		Environment:            getEnvWithDefault("ENVIRONMENT", "development"),
	}, nil
}

// validate checks the settings every command needs
func (c *Config) validate() error {
	switch c.StorageType {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageSQLite, c.StorageType)
	}
	if c.StartingBalanceDollars <= 0 {
		return errors.New("STARTING_BALANCE must be positive")
	}
	return nil
}

// ValidateDiscord checks the settings the Discord bot needs
func (c *Config) ValidateDiscord() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	return nil
}

// DatabasePath returns the SQLite database file location
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "tucotrainer.db")
}

// ElasticsearchEnabled reports whether round results are also indexed
func (c *Config) ElasticsearchEnabled() bool {
	return c.ESURL != ""
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
