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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
)

// envMap returns a LookupEnv backed by m, so tests never touch the process
// environment and can load several configurations side by side.
func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Directory.BaseURL)
	assert.Empty(t, cfg.Directory.APIKey)
	assert.Equal(t, "und", cfg.Directory.Locale)
	assert.Zero(t, cfg.Directory.Timeout)
	assert.Equal(t, 4*time.Second, cfg.UI.NoticeDuration)
	assert.Equal(t, 8, cfg.UI.ListHeight)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
directory:
  base_url: https://directory.example.com/api/v1
  api_key: file-key
  locale: de
  timeout: 5s

ui:
  notice_duration: 2s
  list_height: 12

log:
  level: debug
  file: ~/geoselect.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(LoadOptions{
		ConfigPath: configPath,
		LookupEnv:  envMap(map[string]string{"HOME": "/home/tester"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://directory.example.com/api/v1", cfg.Directory.BaseURL)
	assert.Equal(t, "file-key", cfg.Directory.APIKey)
	assert.Equal(t, "de", cfg.Directory.Locale)
	assert.Equal(t, 5*time.Second, cfg.Directory.Timeout)
	assert.Equal(t, 2*time.Second, cfg.UI.NoticeDuration)
	assert.Equal(t, 12, cfg.UI.ListHeight)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join("/home/tester", "geoselect.log"), cfg.Log.File)
}

func TestLoadConfigFile_EmptyLocale(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "directory:\n  base_url: https://directory.example.com\n  locale: \"\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(LoadOptions{ConfigPath: configPath, LookupEnv: envMap(nil)})
	require.NoError(t, err)

	assert.Empty(t, cfg.Directory.Locale)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(LoadOptions{
			ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
			LookupEnv:  envMap(nil),
		})
		var cfgErr *geoerrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("directory: [unclosed"), 0o644))

		_, err := Load(LoadOptions{ConfigPath: path, LookupEnv: envMap(nil)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestHomeConfigDiscovery(t *testing.T) {
	homeDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(homeDir, ".geoselect"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(homeDir, ".geoselect", "config.yml"),
		[]byte("directory:\n  base_url: https://home.example.com\n"),
		0o644,
	))

	cfg, err := Load(LoadOptions{LookupEnv: envMap(map[string]string{"HOME": homeDir})})
	require.NoError(t, err)
	assert.Equal(t, "https://home.example.com", cfg.Directory.BaseURL)
}

func TestEnvironmentOverrides(t *testing.T) {
	cfg, err := Load(LoadOptions{
		LookupEnv: envMap(map[string]string{
			"HOME":          t.TempDir(),
			EnvBaseURL:      "https://env.example.com",
			EnvAPIKey:       "env-key",
			EnvLocale:       "fr",
			EnvTimeout:      "750ms",
			EnvLogLevel:     "info",
			EnvLegacyAPIKey: "ignored-because-primary-set",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Directory.BaseURL)
	assert.Equal(t, "env-key", cfg.Directory.APIKey)
	assert.Equal(t, "fr", cfg.Directory.Locale)
	assert.Equal(t, 750*time.Millisecond, cfg.Directory.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLegacyEnvironmentNames(t *testing.T) {
	cfg, err := Load(LoadOptions{
		LookupEnv: envMap(map[string]string{
			"HOME":           t.TempDir(),
			EnvLegacyBaseURL: "https://example.com/api/v1",
			EnvLegacyAPIKey:  "vite-key",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/api/v1", cfg.Directory.BaseURL)
	assert.Equal(t, "vite-key", cfg.Directory.APIKey)
}

func TestInvalidTimeoutEnv(t *testing.T) {
	_, err := Load(LoadOptions{
		LookupEnv: envMap(map[string]string{"HOME": t.TempDir(), EnvTimeout: "soon"}),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, geoerrors.ErrInvalidConfig))
}

func TestEnvFilePrecedence(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
directory:
  base_url: https://file.example.com
  api_key: file-key
  locale: es
`), 0o644))

	envFile := filepath.Join(tmpDir, "local.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"GEOSELECT_API_BASE_URL=https://dotenv.example.com\nGEOSELECT_API_KEY=dotenv-key\n",
	), 0o644))

	cfg, err := Load(LoadOptions{
		ConfigPath: configPath,
		EnvFile:    envFile,
		LookupEnv: envMap(map[string]string{
			"HOME":    tmpDir,
			EnvAPIKey: "process-key",
		}),
	})
	require.NoError(t, err)

	// .env beats the YAML file, the process environment beats .env.
	assert.Equal(t, "https://dotenv.example.com", cfg.Directory.BaseURL)
	assert.Equal(t, "process-key", cfg.Directory.APIKey)
	assert.Equal(t, "es", cfg.Directory.Locale)

	cfg.ApplyOverrides(Overrides{BaseURL: "https://flag.example.com", LogLevel: "debug"})
	assert.Equal(t, "https://flag.example.com", cfg.Directory.BaseURL)
	assert.Equal(t, "process-key", cfg.Directory.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestMissingExplicitEnvFile(t *testing.T) {
	_, err := Load(LoadOptions{
		EnvFile:   filepath.Join(t.TempDir(), "missing.env"),
		LookupEnv: envMap(map[string]string{"HOME": t.TempDir()}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env file")
}

func TestIndependentConfigurations(t *testing.T) {
	a, err := Load(LoadOptions{LookupEnv: envMap(map[string]string{"HOME": t.TempDir(), EnvBaseURL: "https://a.example.com"})})
	require.NoError(t, err)
	b, err := Load(LoadOptions{LookupEnv: envMap(map[string]string{"HOME": t.TempDir(), EnvBaseURL: "https://b.example.com", EnvAPIKey: "k"})})
	require.NoError(t, err)

	assert.Equal(t, "https://a.example.com", a.Directory.BaseURL)
	assert.Empty(t, a.Directory.APIKey)
	assert.Equal(t, "https://b.example.com", b.Directory.BaseURL)
	assert.Equal(t, "k", b.Directory.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Directory.BaseURL = "https://example.com/api/v1"
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
		field    string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:     "missing base url",
			mutate:   func(c *Config) { c.Directory.BaseURL = "" },
			sentinel: geoerrors.ErrMissingBaseURL,
			field:    "directory.base_url",
		},
		{
			name:     "blank base url",
			mutate:   func(c *Config) { c.Directory.BaseURL = "   " },
			sentinel: geoerrors.ErrMissingBaseURL,
			field:    "directory.base_url",
		},
		{
			name:     "relative base url",
			mutate:   func(c *Config) { c.Directory.BaseURL = "/api/v1" },
			sentinel: geoerrors.ErrInvalidConfig,
			field:    "directory.base_url",
		},
		{
			name:     "unsupported scheme",
			mutate:   func(c *Config) { c.Directory.BaseURL = "ftp://example.com" },
			sentinel: geoerrors.ErrInvalidConfig,
			field:    "directory.base_url",
		},
		{
			name:     "bad locale",
			mutate:   func(c *Config) { c.Directory.Locale = "not a locale!" },
			sentinel: geoerrors.ErrInvalidConfig,
			field:    "directory.locale",
		},
		{
			name:   "empty locale selects root collation",
			mutate: func(c *Config) { c.Directory.Locale = "" },
		},
		{
			name:     "negative timeout",
			mutate:   func(c *Config) { c.Directory.Timeout = -time.Second },
			sentinel: geoerrors.ErrInvalidConfig,
			field:    "directory.timeout",
		},
		{
			name:     "zero notice duration",
			mutate:   func(c *Config) { c.UI.NoticeDuration = 0 },
			sentinel: geoerrors.ErrInvalidConfig,
			field:    "ui.notice_duration",
		},
		{
			name:     "zero list height",
			mutate:   func(c *Config) { c.UI.ListHeight = 0 },
			sentinel: geoerrors.ErrInvalidConfig,
			field:    "ui.list_height",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.sentinel == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)

			var cfgErr *geoerrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
