// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type LomiConfig struct {
	APIURL            string `yaml:"api_url"`
	Currency          string `yaml:"currency"`
	Simulation        bool   `yaml:"simulation"`
	ExpirationMinutes int    `yaml:"expiration_minutes"`
	APIKey            string `yaml:"-"` // Loaded from environment
	WebhookSecret     string `yaml:"-"` // Loaded from environment
}

type EmailConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type BookingConfig struct {
	PendingTTLHours int `yaml:"pending_ttl_hours"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Lomi     LomiConfig     `yaml:"lomi"`
	Email    EmailConfig    `yaml:"email"`
	Booking  BookingConfig  `yaml:"booking"`
}

// Load loads both .env and yaml configuration. A missing config file is not
// an error: defaults plus environment overrides produce a runnable config
// for local development.
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := defaults()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Fall through to env-only configuration.
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.App.Name = "padelcourt"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.BaseURL = "http://localhost:8080"
	cfg.Database.Driver = "sqlite"
	cfg.Database.Filename = "data/padelcourt.db"
	cfg.Lomi.APIURL = "https://api.lomi.africa/v1"
	cfg.Lomi.Currency = "XOF"
	cfg.Lomi.Simulation = true
	cfg.Lomi.ExpirationMinutes = 30
	cfg.Booking.PendingTTLHours = 24
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v, ok := os.LookupEnv("ENVIRONMENT"); ok {
		cfg.App.Environment = v
	}
	if v, ok := os.LookupEnv("BASE_URL"); ok {
		cfg.App.BaseURL = v
	}
	if v, ok := os.LookupEnv("DATABASE_PATH"); ok {
		cfg.Database.Filename = v
	}

	// Secrets only ever come from the environment.
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Lomi.APIKey = os.Getenv("LOMI_API_KEY")
	cfg.Lomi.WebhookSecret = os.Getenv("LOMI_WEBHOOK_SECRET")
	cfg.Email.AccessKeyID = os.Getenv("SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("SES_SECRET_ACCESS_KEY")
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.App.BaseURL == "" {
		return fmt.Errorf("app base_url is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if !c.Lomi.Simulation {
		if c.Lomi.APIURL == "" {
			return fmt.Errorf("lomi api_url is required in live mode")
		}
		if c.Lomi.APIKey == "" {
			return fmt.Errorf("LOMI_API_KEY is required in live mode")
		}
	}
	if c.Lomi.Currency == "" {
		return fmt.Errorf("lomi currency is required")
	}
	if c.Lomi.ExpirationMinutes <= 0 {
		return fmt.Errorf("lomi expiration_minutes must be positive")
	}

	if c.Email.Enabled {
		if c.Email.Region == "" || c.Email.Sender == "" {
			return fmt.Errorf("email region and sender are required when email is enabled")
		}
	}

	if c.Booking.PendingTTLHours <= 0 {
		return fmt.Errorf("booking pending_ttl_hours must be positive")
	}

	return nil
}
