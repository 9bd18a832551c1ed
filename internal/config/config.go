package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// Values are read from app.env in the config directory and overridden by environment variables.
type Config struct {
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	DBSource           string        `mapstructure:"DB_SOURCE"`
	UVAPIBaseURL       string        `mapstructure:"UV_API_BASE_URL"`
	UVAPIKey           string        `mapstructure:"UV_API_KEY"`
	UVAPITimeout       time.Duration `mapstructure:"UV_API_TIMEOUT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogFormat          string        `mapstructure:"LOG_FORMAT"`
	ZipkinURL          string        `mapstructure:"ZIPKIN_URL"`
	ServiceName        string        `mapstructure:"SERVICE_NAME"`
	GinMode            string        `mapstructure:"GIN_MODE"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":       ":8080",
	"DB_SOURCE":            "",
	"UV_API_BASE_URL":      "https://api.openweathermap.org/data/3.0",
	"UV_API_KEY":           "",
	"UV_API_TIMEOUT":       "5s",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"ZIPKIN_URL":           "",
	"SERVICE_NAME":         "uv-advisory-api",
	"GIN_MODE":             "release",
	"CORS_ALLOWED_ORIGINS": "*",
	"SHUTDOWN_TIMEOUT":     "10s",
}

// LoadConfig loads configuration with Load and validates it for the API server.
func LoadConfig(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from app.env under path, a .env file in the
// working directory if present, and the process environment. It does not validate.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required settings are present and durations are usable.
func (c *Config) Validate() error {
	if c.DBSource == "" {
		return errors.New("config: DB_SOURCE is required")
	}
	if c.UVAPIKey == "" {
		return errors.New("config: UV_API_KEY is required")
	}
	if c.UVAPITimeout <= 0 {
		return errors.New("config: UV_API_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("config: SHUTDOWN_TIMEOUT must be positive")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: unsupported LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}
