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

// Package config types define the configuration structures used throughout
// geoselect. These types represent settings that can be loaded from YAML
// configuration files, a .env file, environment variables, or command-line flags.
package config

import "time"

// Config is the root configuration object. It is built once at startup and
// handed to the components that need it; nothing else reads the environment.
type Config struct {
	Directory DirectoryConfig `yaml:"directory"`
	UI        UIConfig        `yaml:"ui"`
	Log       LogConfig       `yaml:"log"`
}

// DirectoryConfig describes how to reach the directory service.
type DirectoryConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`

	// Locale selects the collation used to sort option lists (BCP 47 tag).
	Locale string `yaml:"locale"`

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig controls the interactive form.
type UIConfig struct {
	// NoticeDuration is how long a transient notification stays visible.
	NoticeDuration time.Duration `yaml:"notice_duration"`
	ListHeight     int           `yaml:"list_height"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with defaults for everything except the
// base URL, which has no sensible default.
func DefaultConfig() *Config {
	return &Config{
		Directory: DirectoryConfig{
			Locale: "und",
		},
		UI: UIConfig{
			NoticeDuration: 4 * time.Second,
			ListHeight:     8,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
