package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	HTTP struct {
		UserAgent    string        `yaml:"userAgent" json:"userAgent"`
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		MaxRedirects *int          `yaml:"maxRedirects" json:"maxRedirects"`
		MaxBodyBytes int64         `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	} `yaml:"http" json:"http"`

	Output struct {
		Format string `yaml:"format" json:"format"`
		Path   string `yaml:"path" json:"path"`
	} `yaml:"output" json:"output"`

	Log struct {
		Verbose bool `yaml:"verbose" json:"verbose"`
		JSON    bool `yaml:"json" json:"json"`
	} `yaml:"log" json:"log"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. Call it on
// defaults before env and flags are applied.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if fc.HTTP.UserAgent != "" {
		cfg.UserAgent = fc.HTTP.UserAgent
	}
	if fc.HTTP.Timeout > 0 {
		cfg.Timeout = fc.HTTP.Timeout
	}
	if fc.HTTP.MaxRedirects != nil {
		cfg.RedirectMaxHops = *fc.HTTP.MaxRedirects
	}
	if fc.HTTP.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = fc.HTTP.MaxBodyBytes
	}
	if fc.Output.Format != "" {
		cfg.Format = fc.Output.Format
	}
	if fc.Output.Path != "" {
		cfg.OutputPath = fc.Output.Path
	}
	if fc.Log.Verbose {
		cfg.Verbose = true
	}
	if fc.Log.JSON {
		cfg.LogJSON = true
	}
}
