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

// Command logplugin runs the error-aggregator plugin server and offers host
// style probes against a running instance.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"dirpx.dev/logplugin"
	"dirpx.dev/logplugin/internal/logging"
)

// Globals is bound into every command's Run.
type Globals struct {
	Logger *slog.Logger
}

type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (YAML)." type:"path" env:"LOGPLUGIN_CONFIG"`
	LogLevel  string           `help:"Log level: debug, info, warn, error. Overrides the config file." env:"LOGPLUGIN_LOG_LEVEL"`
	LogFormat string           `help:"Log format: text or json. Overrides the config file." env:"LOGPLUGIN_LOG_FORMAT"`
	Version   kong.VersionFlag `help:"Show version and exit."`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Serve the LogPlugin gRPC service."`
	Info    InfoCmd    `cmd:"" help:"Query GetPluginInfo on a running plugin."`
	Process ProcessCmd `cmd:"" help:"Send a PluginRequest to a running plugin."`
}

func (c *CLI) logger(fallbackLevel, fallbackFormat string) *slog.Logger {
	level, format := c.LogLevel, c.LogFormat
	if level == "" {
		level = fallbackLevel
	}
	if format == "" {
		format = fallbackFormat
	}
	return logging.New(os.Stderr, format, logging.ParseLevel(level))
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("logplugin"),
		kong.Description(logplugin.Description),
		kong.UsageOnError(),
		kong.Vars{"version": logplugin.Name + " " + logplugin.Version},
	)

	g := &Globals{Logger: cli.logger("info", logging.FormatText)}
	slog.SetDefault(g.Logger)

	if err := ctx.Run(&cli, g); err != nil {
		g.Logger.Error("command failed", slog.String("command", ctx.Command()), logging.Error(err))
		os.Exit(1)
	}
}
