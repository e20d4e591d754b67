package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"dev"`

	ListenAddress string `default:":8000" split_words:"true"`
	AllowedOrigin string `default:"*" split_words:"true"`

	StorageDriver string        `default:"postgres" split_words:"true"`
	PostgresDSN   string        `split_words:"true"`
	CacheLifetime time.Duration `default:"5m" split_words:"true"`

	TokenSecret   string        `split_words:"true"`
	TokenLifetime time.Duration `default:"24h" split_words:"true"`

	AdminUsername string `default:"admin" split_words:"true"`
	AdminPassword string `default:"admin" split_words:"true"`
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.ToLower(config.Environment) == "prod"
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("ts", config); err != nil {
		return nil, err
	}
	return config, nil
}
