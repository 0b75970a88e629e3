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

// Package server runs the plugin: the LogPlugin gRPC service with health and
// reflection, and the optional admin HTTP surface.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	logpluginv1 "dirpx.dev/logplugin/api/logplugin/v1"
	"dirpx.dev/logplugin/apis"
	"dirpx.dev/logplugin/grpcx"
	"dirpx.dev/logplugin/httpx"
	"dirpx.dev/logplugin/internal/config"
	"dirpx.dev/logplugin/internal/logging"
	"dirpx.dev/logplugin/internal/metrics"
	"dirpx.dev/logplugin/mapper"
)

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the server logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// Server owns the gRPC server and the admin HTTP server.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	mapper   apis.Mapper
	registry *prom.Registry

	grpc   *grpc.Server
	health *health.Server
	admin  *http.Server
}

// New builds a Server for plugin. Nothing listens until Run or Serve.
func New(cfg *config.Config, plugin apis.Plugin, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	m, err := newMapper(cfg)
	if err != nil {
		return nil, err
	}
	s.mapper = m
	s.registry = metrics.NewRegistry()
	rec := metrics.NewPrometheusRecorder(s.registry)

	s.grpc = grpc.NewServer(
		grpc.NumStreamWorkers(uint32(cfg.Server.MaxWorkers)),
		grpcx.ServerInterceptors(s.mapper, s.logger, rec),
	)
	logpluginv1.RegisterLogPluginServer(s.grpc, NewService(plugin, rec))

	s.health = health.NewServer()
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(logpluginv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s.grpc, s.health)

	if cfg.Server.Reflection {
		reflection.Register(s.grpc)
	}

	if cfg.Admin.Listen != "" {
		s.admin = &http.Server{
			Handler: httpx.NewRouter(httpx.Config{
				Plugin:   plugin,
				Mapper:   s.mapper,
				Logger:   s.logger,
				Recorder: rec,
				Metrics:  metrics.HTTPHandler(s.registry),
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return s, nil
}

// newMapper combines the transport rules with the configured status
// adjustments.
func newMapper(cfg *config.Config) (apis.Mapper, error) {
	adjust, err := cfg.Status.MapperOptions()
	if err != nil {
		return nil, err
	}
	return mapper.New(append(httpx.MapperOptions(), adjust...)...)
}

// Run listens on the configured addresses and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Server.Listen, err)
	}
	var adminLis net.Listener
	if s.admin != nil {
		adminLis, err = net.Listen("tcp", s.cfg.Admin.Listen)
		if err != nil {
			_ = lis.Close()
			return fmt.Errorf("server: admin listen %s: %w", s.cfg.Admin.Listen, err)
		}
	}
	return s.Serve(ctx, lis, adminLis)
}

// Serve serves gRPC on lis and, when the admin surface is enabled and
// adminLis is non-nil, HTTP on adminLis. It returns after ctx is done and
// both servers have stopped, or as soon as either fails.
func (s *Server) Serve(ctx context.Context, lis, adminLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("plugin server started", logging.Addr(lis.Addr().String()))
		if err := s.grpc.Serve(lis); !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	if s.admin != nil && adminLis != nil {
		g.Go(func() error {
			s.logger.Info("admin server started", logging.Addr(adminLis.Addr().String()))
			if err := s.admin.Serve(adminLis); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	return g.Wait()
}

// shutdown stops both servers within one shutdown timeout: the admin server
// and the gRPC drain share a single deadline, after which gRPC stops hard.
func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.health.Shutdown()

	if s.admin != nil {
		if err := s.admin.Shutdown(ctx); err != nil {
			s.logger.Warn("admin shutdown", logging.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("graceful stop timed out, forcing")
		s.grpc.Stop()
		<-done
	}
	s.logger.Info("plugin server stopped")
}
