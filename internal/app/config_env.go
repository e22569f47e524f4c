package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvUserAgent    = "WIKITEXT_USER_AGENT"
	EnvTimeout      = "WIKITEXT_TIMEOUT"
	EnvMaxRedirects = "WIKITEXT_MAX_REDIRECTS"
	EnvMaxBodyBytes = "WIKITEXT_MAX_BODY_BYTES"
	EnvFormat       = "WIKITEXT_FORMAT"
	EnvOutput       = "WIKITEXT_OUTPUT"
	EnvVerbose      = "WIKITEXT_VERBOSE"
	EnvLogJSON      = "WIKITEXT_LOG_JSON"
)

// ApplyEnvOverrides overrides cfg fields with environment variables when the
// corresponding env vars are set. Env sits above the config file and below
// explicit flags. Unparsable values are logged and ignored.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := strings.TrimSpace(os.Getenv(EnvUserAgent)); v != "" {
		cfg.UserAgent = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFormat)); v != "" {
		cfg.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		cfg.OutputPath = v
	}

	if s := strings.TrimSpace(os.Getenv(EnvTimeout)); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.Timeout = d
		} else {
			log.Warn().Err(err).Str("env", EnvTimeout).Msg("ignoring invalid duration")
		}
	}
	if s := strings.TrimSpace(os.Getenv(EnvMaxRedirects)); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.RedirectMaxHops = n
		} else {
			log.Warn().Err(err).Str("env", EnvMaxRedirects).Msg("ignoring invalid integer")
		}
	}
	if s := strings.TrimSpace(os.Getenv(EnvMaxBodyBytes)); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			cfg.MaxBodyBytes = n
		} else {
			log.Warn().Err(err).Str("env", EnvMaxBodyBytes).Msg("ignoring invalid integer")
		}
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.Verbose, EnvVerbose)
	setBool(&cfg.LogJSON, EnvLogJSON)
}
