package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Providers ProvidersConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ProvidersConfig holds settings for the geocoding and weather collaborators
type ProvidersConfig struct {
	GeocodingURL   string
	ForecastURL    string
	GeocodingCount int
	Language       string
	// Timeout of 0 means outbound calls never time out
	Timeout        time.Duration
	CircuitBreaker CircuitBreakerConfig
}

// CircuitBreakerConfig controls the breaker wrapped around each provider client
type CircuitBreakerConfig struct {
	Enabled     bool
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// Load reads configuration from an optional .env file, a config file and environment variables
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.weather-now")

	setDefaults(v)

	// Read from environment variables, e.g. WEATHER_NOW_SERVER_PORT
	v.SetEnvPrefix("WEATHER_NOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("providers.geocodingurl", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("providers.forecasturl", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("providers.geocodingcount", 10)
	v.SetDefault("providers.language", "en")
	v.SetDefault("providers.timeout", time.Duration(0))
	v.SetDefault("providers.circuitbreaker.enabled", true)
	v.SetDefault("providers.circuitbreaker.maxrequests", 5)
	v.SetDefault("providers.circuitbreaker.interval", time.Minute)
	v.SetDefault("providers.circuitbreaker.timeout", 2*time.Minute)
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(c.Log.Level),
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
