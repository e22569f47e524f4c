package app

import (
	"errors"
	"strings"
	"time"

	"github.com/hyperifyio/wikitext/internal/fetch"
	"github.com/hyperifyio/wikitext/internal/render"
)

// Config holds runtime configuration for the application.
type Config struct {
	// HTTP
	UserAgent       string
	Timeout         time.Duration
	RedirectMaxHops int
	MaxBodyBytes    int64

	// Output. Empty OutputPath or "-" means stdout.
	Format     string
	OutputPath string

	// Logging
	Verbose bool
	LogJSON bool
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		UserAgent:       fetch.DefaultUserAgent,
		Timeout:         fetch.DefaultTimeout,
		RedirectMaxHops: fetch.DefaultRedirectMaxHops,
		MaxBodyBytes:    fetch.DefaultMaxBodyBytes,
		Format:          string(render.FormatText),
	}
}

// ValidateConfig performs minimal schema validation.
func ValidateConfig(cfg Config) error {
	if cfg.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	if cfg.RedirectMaxHops < 0 || cfg.MaxBodyBytes < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return errors.New("config: user agent is required")
	}
	if _, err := render.ParseFormat(cfg.Format); err != nil {
		return errors.New("config: " + err.Error())
	}
	return nil
}
