/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/logplugin/aggregator"
	"dirpx.dev/logplugin/internal/config"
	"dirpx.dev/logplugin/internal/server"
)

// ServeCmd starts the plugin server. Flags left at their zero value keep the
// configuration file's settings.
type ServeCmd struct {
	Listen          string        `short:"l" help:"gRPC listen address." env:"LOGPLUGIN_LISTEN"`
	MaxWorkers      int           `help:"Number of stream workers handling calls concurrently." env:"LOGPLUGIN_MAX_WORKERS"`
	ShutdownTimeout time.Duration `help:"Graceful stop budget before a hard stop." env:"LOGPLUGIN_SHUTDOWN_TIMEOUT"`
	Admin           string        `help:"Admin HTTP listen address; empty disables it." env:"LOGPLUGIN_ADMIN_LISTEN"`
	NoReflection    bool          `help:"Disable the gRPC reflection service." env:"LOGPLUGIN_NO_REFLECTION"`
}

func (c *ServeCmd) apply(cfg *config.Config) {
	if c.Listen != "" {
		cfg.Server.Listen = c.Listen
	}
	if c.MaxWorkers != 0 {
		cfg.Server.MaxWorkers = c.MaxWorkers
	}
	if c.ShutdownTimeout != 0 {
		cfg.Server.ShutdownTimeout = c.ShutdownTimeout
	}
	if c.Admin != "" {
		cfg.Admin.Listen = c.Admin
	}
	if c.NoReflection {
		cfg.Server.Reflection = false
	}
}

func (c *ServeCmd) Run(cli *CLI, g *Globals) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cli.logger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	g.Logger = logger

	srv, err := server.New(cfg, aggregator.New(), server.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
