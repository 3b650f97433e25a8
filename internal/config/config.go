// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for geoselect with
// support for multiple configuration sources and a well-defined precedence
// order. The result is a single explicit Config value that is passed to the
// directory client and the UI; no other package reads the environment.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags (see Overrides)
//  2. Environment variables
//  3. A .env file
//  4. YAML configuration file
//  5. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
)

// Environment variable names. The VITE_ names are accepted for deployments
// that share a .env file with the web front end.
const (
	EnvBaseURL       = "GEOSELECT_API_BASE_URL"
	EnvAPIKey        = "GEOSELECT_API_KEY"
	EnvLocale        = "GEOSELECT_LOCALE"
	EnvTimeout       = "GEOSELECT_TIMEOUT"
	EnvLogLevel      = "GEOSELECT_LOG_LEVEL"
	EnvLegacyBaseURL = "VITE_API_BASE_URL"
	EnvLegacyAPIKey  = "VITE_API_KEY"
)

// LoadOptions selects the files and environment used by Load.
type LoadOptions struct {
	// ConfigPath is an explicit YAML file. When empty the standard
	// locations are searched.
	ConfigPath string

	// EnvFile is an explicit .env file. When empty ".env" in the current
	// directory is used if it exists.
	EnvFile string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Overrides carries command-line flag values. Empty fields are ignored.
type Overrides struct {
	BaseURL  string
	APIKey   string
	Locale   string
	LogLevel string
	LogFile  string
}

// LoadConfig loads configuration from the standard sources using the process
// environment. If configPath is provided, it loads from that specific file.
// Otherwise, it searches standard locations:
//   - .geoselect.yaml (current directory)
//   - .geoselect.yml (current directory)
//   - ~/.geoselect/config.yaml
//   - ~/.geoselect/config.yml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
// The returned Config is not validated; call Validate before use.
func LoadConfig(configPath string) (*Config, error) {
	return Load(LoadOptions{ConfigPath: configPath})
}

// Load is LoadConfig with explicit control over files and environment.
func Load(opts LoadOptions) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := DefaultConfig()

	if opts.ConfigPath != "" {
		if err := loadConfigFile(opts.ConfigPath, cfg); err != nil {
			return nil, &geoerrors.ConfigError{Err: err}
		}
	} else {
		homeDir := home(lookup)
		defaultPaths := []string{
			".geoselect.yaml",
			".geoselect.yml",
			filepath.Join(homeDir, ".geoselect", "config.yaml"),
			filepath.Join(homeDir, ".geoselect", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, &geoerrors.ConfigError{Err: fmt.Errorf("failed to load config from %s: %w", path, err)}
				}
				break
			}
		}
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return nil, &geoerrors.ConfigError{Err: err}
	}

	// Process environment wins over the .env file.
	env := func(key string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}

	if err := applyEnvOverrides(cfg, env); err != nil {
		return nil, err
	}

	cfg.Log.File = expandPath(cfg.Log.File, home(lookup))

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// readEnvFile returns the variables in path, or in ./.env when path is empty.
// A missing default file is not an error.
func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return vars, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config, env func(string) string) error {
	if v := env(EnvLegacyBaseURL); v != "" {
		cfg.Directory.BaseURL = v
	}
	if v := env(EnvBaseURL); v != "" {
		cfg.Directory.BaseURL = v
	}
	if v := env(EnvLegacyAPIKey); v != "" {
		cfg.Directory.APIKey = v
	}
	if v := env(EnvAPIKey); v != "" {
		cfg.Directory.APIKey = v
	}
	if v := env(EnvLocale); v != "" {
		cfg.Directory.Locale = v
	}
	if v := env(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &geoerrors.ConfigError{Field: EnvTimeout, Err: fmt.Errorf("%w: %v", geoerrors.ErrInvalidConfig, err)}
		}
		cfg.Directory.Timeout = d
	}
	if v := env(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// ApplyOverrides copies non-empty flag values into the config.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.BaseURL != "" {
		c.Directory.BaseURL = o.BaseURL
	}
	if o.APIKey != "" {
		c.Directory.APIKey = o.APIKey
	}
	if o.Locale != "" {
		c.Directory.Locale = o.Locale
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
}

func home(lookup func(string) (string, bool)) string {
	if h, ok := lookup("HOME"); ok && h != "" {
		return h
	}
	h, _ := lookup("USERPROFILE") // Windows
	return h
}

// expandPath expands a leading ~/ in path.
func expandPath(path, home string) string {
	if strings.HasPrefix(path, "~/") && home != "" {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration contains valid values. A missing base
// URL is reported as ErrMissingBaseURL; every other problem as
// ErrInvalidConfig. Both come wrapped in a ConfigError.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.Directory.BaseURL)
	if base == "" {
		return &geoerrors.ConfigError{Field: "directory.base_url", Err: geoerrors.ErrMissingBaseURL}
	}

	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &geoerrors.ConfigError{
			Field: "directory.base_url",
			Err:   fmt.Errorf("%w: %q is not an absolute http(s) URL", geoerrors.ErrInvalidConfig, base),
		}
	}

	// An empty locale selects root collation, as in directory.NewHTTPClient.
	if loc := strings.TrimSpace(c.Directory.Locale); loc != "" {
		if _, err := language.Parse(loc); err != nil {
			return &geoerrors.ConfigError{
				Field: "directory.locale",
				Err:   fmt.Errorf("%w: %v", geoerrors.ErrInvalidConfig, err),
			}
		}
	}

	if c.Directory.Timeout < 0 {
		return &geoerrors.ConfigError{
			Field: "directory.timeout",
			Err:   fmt.Errorf("%w: must not be negative, got %s", geoerrors.ErrInvalidConfig, c.Directory.Timeout),
		}
	}

	if c.UI.NoticeDuration <= 0 {
		return &geoerrors.ConfigError{
			Field: "ui.notice_duration",
			Err:   fmt.Errorf("%w: must be positive, got %s", geoerrors.ErrInvalidConfig, c.UI.NoticeDuration),
		}
	}

	if c.UI.ListHeight < 1 {
		return &geoerrors.ConfigError{
			Field: "ui.list_height",
			Err:   fmt.Errorf("%w: must be at least 1, got %d", geoerrors.ErrInvalidConfig, c.UI.ListHeight),
		}
	}

	return nil
}
