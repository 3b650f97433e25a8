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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirseerhq/geoselect/internal/config"
	"github.com/sirseerhq/geoselect/internal/directory"
	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
	"github.com/sirseerhq/geoselect/internal/tui"
)

// globalFlags holds the persistent flag values shared by every command.
type globalFlags struct {
	configPath string
	envFile    string
	overrides  config.Overrides
}

// app carries the dependencies commands are built from. Tests replace the
// factories to avoid the network and the terminal.
type app struct {
	flags     globalFlags
	lookupEnv func(string) (string, bool)
	newClient func(cfg config.DirectoryConfig, log zerolog.Logger) (directory.Client, error)
	runForm   func(ctx context.Context, m *tui.Model, stdin io.Reader, out io.Writer) error
}

func newApp() *app {
	return &app{
		lookupEnv: os.LookupEnv,
		newClient: func(cfg config.DirectoryConfig, log zerolog.Logger) (directory.Client, error) {
			return directory.NewHTTPClient(cfg, directory.WithLogger(log))
		},
		runForm: runProgram,
	}
}

// session is the per-invocation setup: validated config, logger and client.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	client directory.Client
	close  func() error
}

// open loads configuration, builds the logger and the directory client.
// Console logs go to stderr unless a log file is configured; when
// interactive is set they are discarded instead, so they never draw over
// the form.
func (a *app) open(stderr io.Writer, interactive bool) (*session, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: a.flags.configPath,
		EnvFile:    a.flags.envFile,
		LookupEnv:  a.lookupEnv,
	})
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(a.flags.overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sink := stderr
	if interactive {
		sink = io.Discard
	}

	log, closeLog, err := newLogger(cfg.Log, sink)
	if err != nil {
		return nil, err
	}

	client, err := a.newClient(cfg.Directory, log)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &session{cfg: cfg, log: log, client: client, close: closeLog}, nil
}

// newLogger builds a zerolog logger at the configured level. Logs are
// appended to cfg.File when set; otherwise they are written to console in
// human-readable form.
func newLogger(cfg config.LogConfig, console io.Writer) (zerolog.Logger, func() error, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return zerolog.Nop(), nil, &geoerrors.ConfigError{
			Field: "log.level",
			Err:   fmt.Errorf("%w: %v", geoerrors.ErrInvalidConfig, err),
		}
	}
	if level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	nop := func() error { return nil }

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log := zerolog.New(f).Level(level).With().Timestamp().Logger()
		return log, f.Close, nil
	}

	if console == io.Discard {
		return zerolog.Nop(), nop, nil
	}

	w := zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen, NoColor: true}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nop, nil
}
