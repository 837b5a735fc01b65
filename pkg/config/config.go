package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// AdminInstanceURL is the admin-configured default Zimbra base URL,
	// used for any user without a per-user override.
	AdminInstanceURL string

	// RefreshConcurrency bounds how many users the dashboard refresh
	// queries at once.
	RefreshConcurrency int
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		AdminInstanceURL:   os.Getenv("ZIMBRA_ADMIN_INSTANCE_URL"),
		RefreshConcurrency: 5,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AdminInstanceURL == "" {
		return fmt.Errorf("ZIMBRA_ADMIN_INSTANCE_URL is required")
	}
	return nil
}
