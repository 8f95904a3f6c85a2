package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	Environment  string
	Upstream     UpstreamConfig
	Redis        RedisConfig
	Auth         AuthConfig
	AssetBaseURL string
	LogLevel     string
}

type UpstreamConfig struct {
	BaseURL   string
	SystemKey string
	Timeout   time.Duration
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	CookieName string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 30)
	viper.SetDefault("AUTH_COOKIE_NAME", "auth_token")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeoutSeconds := viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Upstream: UpstreamConfig{
			BaseURL:   getEnvOrViper("BACKEND_BASE_URL", ""),
			SystemKey: getEnvOrViper("SYSTEM_KEY", ""),
			Timeout:   time.Duration(timeoutSeconds) * time.Second,
		},
		Redis: RedisConfig{
			URL: getEnvOrViper("REDIS_URL", ""),
		},
		Auth: AuthConfig{
			CookieName: getEnvOrViper("AUTH_COOKIE_NAME", "auth_token"),
		},
		AssetBaseURL: getEnvOrViper("ASSET_BASE_URL", ""),
		LogLevel:     getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.Upstream.SystemKey == "" {
		return nil, fmt.Errorf("SYSTEM_KEY is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
