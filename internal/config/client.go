package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ClientConfig represents the configuration of the toolsctl client
type ClientConfig struct {
	APIURL      string        `default:"http://localhost:8000" envconfig:"API_URL"`
	SessionFile string        `split_words:"true"`
	Timeout     time.Duration `default:"10s"`
}

// LoadClientFromEnv loads the client configuration using environment variables and an optional .env file.
// If no session file is configured, it defaults to 'tools-sys/session.json' inside the user's configuration directory.
func LoadClientFromEnv() (*ClientConfig, error) {
	_ = godotenv.Load()

	config := new(ClientConfig)
	if err := envconfig.Process("tsctl", config); err != nil {
		return nil, err
	}

	if config.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		config.SessionFile = filepath.Join(dir, "tools-sys", "session.json")
	}
	return config, nil
}
