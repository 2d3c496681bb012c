// Package config loads runtime settings for the catalog binaries.
// Precedence, lowest first: built-in defaults, YAML file, .env file, process environment
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all settings
type Config struct {
	API       APIConfig       `yaml:"api"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig configures the upstream client
type APIConfig struct {
	BaseURL       string        `yaml:"base_url" validate:"required,url"`
	UserAgent     string        `yaml:"user_agent" validate:"required"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	RetryAttempts int           `yaml:"retry_attempts" validate:"min=1,max=10"`
	RetryDelay    time.Duration `yaml:"retry_delay" validate:"gte=0"`
}

// CatalogConfig sizes the bulk load and the random samples
type CatalogConfig struct {
	Limit               int `yaml:"limit" validate:"min=1"`
	InitialDisplayCount int `yaml:"initial_display_count" validate:"min=1"`
	RecommendationCount int `yaml:"recommendation_count" validate:"min=1"`
}

// ServerConfig is only read by cmd/server
type ServerConfig struct {
	Port           string   `yaml:"port" validate:"required,numeric"`
	StaticDir      string   `yaml:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,required"`
}

// LoggingConfig selects the zap configuration
type LoggingConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// TelemetryConfig toggles HTTP client instrumentation
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       "https://pokeapi.co/api/v2",
			UserAgent:     "pokedex/1.0",
			Timeout:       30 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    time.Second,
		},
		Catalog: CatalogConfig{
			Limit:               1025,
			InitialDisplayCount: 51,
			RecommendationCount: 3,
		},
		Server: ServerConfig{
			Port:           "8080",
			StaticDir:      "../frontend/dist",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path,
// an optional .env file and the environment, then validates it
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	// A missing .env is normal outside development
	_ = godotenv.Load()

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.API.BaseURL = GetEnv("POKEAPI_BASE_URL", c.API.BaseURL)
	c.API.UserAgent = GetEnv("POKEAPI_USER_AGENT", c.API.UserAgent)
	c.API.Timeout = GetDurationEnv("POKEAPI_TIMEOUT", c.API.Timeout)
	c.API.RetryAttempts = GetIntEnv("POKEAPI_RETRY_ATTEMPTS", c.API.RetryAttempts)
	c.API.RetryDelay = GetDurationEnv("POKEAPI_RETRY_DELAY", c.API.RetryDelay)

	c.Catalog.Limit = GetIntEnv("POKEDEX_LIMIT", c.Catalog.Limit)
	c.Catalog.InitialDisplayCount = GetIntEnv("POKEDEX_INITIAL_DISPLAY_COUNT", c.Catalog.InitialDisplayCount)
	c.Catalog.RecommendationCount = GetIntEnv("POKEDEX_RECOMMENDATION_COUNT", c.Catalog.RecommendationCount)

	c.Server.Port = GetEnv("PORT", c.Server.Port)
	c.Server.StaticDir = GetEnv("STATIC_DIR", c.Server.StaticDir)
	c.Server.AllowedOrigins = GetListEnv("ALLOWED_ORIGINS", c.Server.AllowedOrigins)

	c.Logging.Level = GetEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Development = GetBoolEnv("LOG_DEVELOPMENT", c.Logging.Development)
	c.Logging.File = GetEnv("LOG_FILE", c.Logging.File)

	c.Telemetry.Enabled = GetBoolEnv("ENABLE_TELEMETRY", c.Telemetry.Enabled)
}

// Validate checks the struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
