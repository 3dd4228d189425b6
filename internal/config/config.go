package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the service configuration, read from the environment with
// safe development defaults.
type Config struct {
	Port            int
	DBPath          string
	ClaimStoreURL   string
	FrontendOrigins []string
	SubmitBaseURL   string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load() // no-op when .env is absent

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("BACKEND_PORT", 8080)
	v.SetDefault("DB_PATH", "rcm.db")
	v.SetDefault("CLAIM_STORE_URL", "")
	v.SetDefault("FRONTEND_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("SUBMIT_BASE_URL", "")

	cfg := Config{
		Port:          v.GetInt("BACKEND_PORT"),
		DBPath:        v.GetString("DB_PATH"),
		ClaimStoreURL: v.GetString("CLAIM_STORE_URL"),
		SubmitBaseURL: v.GetString("SUBMIT_BASE_URL"),
	}
	for _, o := range strings.Split(v.GetString("FRONTEND_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.FrontendOrigins = append(cfg.FrontendOrigins, o)
		}
	}
	if cfg.SubmitBaseURL == "" {
		cfg.SubmitBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	return cfg
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
