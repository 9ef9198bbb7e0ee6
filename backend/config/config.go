package config

import (
	"time"

	"github.com/sovereignhud/sovereign-hud/sovereign"
)

// WebAppConfig carries the web-specific slice of the application config.
type WebAppConfig struct {
	Config      *sovereign.Config
	Debug       bool
	Environment string
	Version     string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *sovereign.Config, debug bool, version string) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
		Version:     version,
	}
}

// CookieName returns the session cookie name, with a default.
func (w *WebAppConfig) CookieName() string {
	if name := w.Config.Server.CookieName; name != "" {
		return name
	}
	return "hud_token"
}

// RateLimit returns the per-IP request budget per minute.
func (w *WebAppConfig) RateLimit() int {
	if limit := w.Config.Server.RateLimit; limit > 0 {
		return limit
	}
	return 120
}

// CookieTTL is how long a login cookie stays valid.
func (w *WebAppConfig) CookieTTL() time.Duration {
	return 30 * 24 * time.Hour
}
