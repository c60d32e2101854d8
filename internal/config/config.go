package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string  `mapstructure:"PORT"`
	Env              string  `mapstructure:"ENV"`
	BackendBaseURL   string  `mapstructure:"BACKEND_BASE_URL"`
	FrontendURL      string  `mapstructure:"FRONTEND_URL"`
	NotificationFile string  `mapstructure:"NOTIFICATION_FILE"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("NOTIFICATION_FILE", "./data/notifications.json")
	v.SetDefault("RATE_LIMIT_RPS", 50.0)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("BACKEND_BASE_URL")
	v.BindEnv("FRONTEND_URL")
	v.BindEnv("NOTIFICATION_FILE")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	cfg.BackendBaseURL = strings.TrimRight(cfg.BackendBaseURL, "/")

	if cfg.IsDev() {
		log.Println("WARNING: server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: set ENV=production before deploying.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. BACKEND_BASE_URL must
// be an absolute http(s) URL and FRONTEND_URL must parse when set.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendBaseURL)
	if err != nil {
		return fmt.Errorf("BACKEND_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BACKEND_BASE_URL must use http or https, got %q", c.BackendBaseURL)
	}
	if c.FrontendURL != "" {
		if _, err := url.Parse(c.FrontendURL); err != nil {
			return fmt.Errorf("FRONTEND_URL is not a valid URL: %w", err)
		}
	}
	return nil
}
