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

// Package config loads the plugin server configuration from YAML with
// environment expansion and optional .env files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc/codes"
	"gopkg.in/yaml.v3"

	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/internal/logging"
	"dirpx.dev/logplugin/mapper"
)

// Defaults.
const (
	DefaultListen          = ":50051"
	DefaultMaxWorkers      = 10
	DefaultShutdownTimeout = 10 * time.Second
)

// EnvFiles are the dotenv files Load reads when present, in order. Values
// already in the process environment win.
var EnvFiles = []string{".env", ".env.local"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Server ServerConfig `yaml:"server"`
	Admin  AdminConfig  `yaml:"admin"`
	Log    LogConfig    `yaml:"log"`
	Status StatusConfig `yaml:"status"`
}

type ServerConfig struct {
	Listen          string        `yaml:"listen"`
	MaxWorkers      int           `yaml:"max_workers"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Reflection      bool          `yaml:"reflection"`
}

// AdminConfig controls the HTTP admin surface. An empty Listen disables it.
type AdminConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StatusConfig adjusts the default status of plugin error codes, keyed by
// code name. gRPC values are canonical names such as "UNAVAILABLE". Reason
// prefix rules still take precedence.
//
//	status:
//	  http: {canceled: 499}
//	  grpc: {internal: UNKNOWN}
type StatusConfig struct {
	HTTP map[string]int    `yaml:"http"`
	GRPC map[string]string `yaml:"grpc"`
}

// MapperOptions converts the adjustments into mapper options.
func (s StatusConfig) MapperOptions() ([]mapper.Option, error) {
	opts := make([]mapper.Option, 0, len(s.HTTP)+len(s.GRPC))
	for name, status := range s.HTTP {
		c, err := pluginCode(name)
		if err != nil {
			return nil, err
		}
		if status < 100 || status > 599 {
			return nil, fmt.Errorf("%w: status.http.%s: %d is not an HTTP status", ErrInvalid, name, status)
		}
		opts = append(opts, mapper.WithHTTPDefault(c, status))
	}
	for name, raw := range s.GRPC {
		c, err := pluginCode(name)
		if err != nil {
			return nil, err
		}
		var gc codes.Code
		if err := gc.UnmarshalJSON([]byte(strconv.Quote(strings.ToUpper(strings.TrimSpace(raw))))); err != nil {
			return nil, fmt.Errorf("%w: status.grpc.%s: %q is not a gRPC code", ErrInvalid, name, raw)
		}
		opts = append(opts, mapper.WithGRPCDefault(c, gc))
	}
	return opts, nil
}

func pluginCode(name string) (code.Code, error) {
	c, err := code.Parse(name)
	if err != nil || !slices.Contains(code.All, c) {
		return "", fmt.Errorf("%w: status: unknown error code %q", ErrInvalid, name)
	}
	return c, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          DefaultListen,
			MaxWorkers:      DefaultMaxWorkers,
			ShutdownTimeout: DefaultShutdownTimeout,
			Reflection:      true,
		},
		Log: LogConfig{Level: "info", Format: logging.FormatText},
	}
}

// Load reads the dotenv files, then the YAML file at path on top of the
// defaults. ${VAR} references in the file are expanded from the environment.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if err := LoadEnv(EnvFiles...); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys absent from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadEnv loads each existing dotenv file. Missing files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Server.Listen) == "":
		return fmt.Errorf("%w: server.listen is empty", ErrInvalid)
	case c.Server.MaxWorkers < 1:
		return fmt.Errorf("%w: server.max_workers must be at least 1, got %d", ErrInvalid, c.Server.MaxWorkers)
	case c.Server.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: server.shutdown_timeout must be positive", ErrInvalid)
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	_, err := c.Status.MapperOptions()
	return err
}
