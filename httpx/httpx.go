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

// Package httpx exposes the plugin over HTTP for operators: health, metrics
// and JSON variants of the two RPCs. Errors are written as google.rpc.Status
// JSON using the same mapper as the gRPC transport.
package httpx

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/logplugin/adapter"
	logpluginv1 "dirpx.dev/logplugin/api/logplugin/v1"
	"dirpx.dev/logplugin/apis"
	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/grpcx"
	"dirpx.dev/logplugin/internal/logging"
	"dirpx.dev/logplugin/internal/metrics"
	"dirpx.dev/logplugin/mapper"
	"dirpx.dev/logplugin/perror"
	"dirpx.dev/logplugin/reason"
)

// MaxBodyBytes bounds the request body accepted by POST /v1/process.
const MaxBodyBytes = 8 << 20

// Reasons attached to rejected process request bodies.
var (
	// ReasonBodySyntax marks a body that is not valid JSON for
	// logplugin.PluginRequest.
	ReasonBodySyntax = reason.MustParse("http.body.syntax")
	// ReasonBodyTooLarge marks a body longer than MaxBodyBytes.
	ReasonBodyTooLarge = reason.MustParse("http.body.size")
)

// MapperOptions returns the status rules for errors raised by this package.
// An oversized body is 413 over HTTP and RESOURCE_EXHAUSTED in the status
// body.
func MapperOptions() []mapper.Option {
	return []mapper.Option{
		mapper.WithHTTPPrefix(code.InvalidParameter, ReasonBodyTooLarge.String(), http.StatusRequestEntityTooLarge),
		mapper.WithGRPCPrefix(code.InvalidParameter, ReasonBodyTooLarge.String(), codes.ResourceExhausted),
	}
}

var marshal = protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: true}

// Writer turns errors into HTTP responses using the provided status mapper.
type Writer struct {
	Mapper apis.Mapper
}

// Write serializes err as a google.rpc.Status JSON document. The HTTP status
// is resolved via the Mapper for *perror.Error values and is 500 otherwise.
func (w Writer) Write(rw http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	httpStatus := http.StatusInternalServerError
	if pe, ok := perror.As(err); ok {
		httpStatus = w.Mapper.HTTPStatus(pe.Code, pe.Reason)
	}
	writeProto(rw, httpStatus, grpcx.Status(w.Mapper, err).Proto())
}

// Config wires the admin router. Mapper should include MapperOptions.
type Config struct {
	Plugin   apis.Plugin
	Mapper   apis.Mapper
	Logger   *slog.Logger
	Recorder metrics.Recorder // optional; records /v1 calls
	Metrics  http.Handler     // optional; /metrics is not mounted when nil
}

// NewRouter builds the admin HTTP handler:
//
//	GET  /healthz
//	GET  /metrics
//	GET  /v1/info
//	POST /v1/process
func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NoopRecorder{}
	}
	h := &handlers{plugin: cfg.Plugin, errs: Writer{Mapper: cfg.Mapper}, rec: cfg.Recorder}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Use(observe(cfg.Recorder))
		r.Get("/info", h.info)
		r.Post("/process", h.process)
	})
	return r
}

type handlers struct {
	plugin apis.Plugin
	errs   Writer
	rec    metrics.Recorder
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *handlers) info(w http.ResponseWriter, _ *http.Request) {
	writeProto(w, http.StatusOK, adapter.Info(h.plugin.Describe()).Message())
}

func (h *handlers) process(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errs.Write(w, bodyError(ReasonBodyTooLarge, "request body too large", err))
			return
		}
		h.errs.Write(w, perror.E(code.Internal, "reading request body").WithCause(err))
		return
	}

	msg := dynamicpb.NewMessage(logpluginv1.PluginRequestDescriptor)
	if len(bytes.TrimSpace(body)) > 0 {
		if err := protojson.Unmarshal(body, msg); err != nil {
			h.errs.Write(w, bodyError(ReasonBodySyntax, "request body is not a valid PluginRequest", err))
			return
		}
	}
	req, err := logpluginv1.PluginRequestFromMessage(msg)
	if err != nil {
		h.errs.Write(w, perror.E(code.Internal, "decoding request").WithCause(err))
		return
	}

	h.rec.AddEntries(len(req.Entries))
	stats, err := h.plugin.Process(r.Context(), adapter.Entries(req.Entries), adapter.Parameters(req.Parameters))
	if err != nil {
		h.errs.Write(w, err)
		return
	}
	for cat, n := range stats {
		h.rec.AddCategory(cat.String(), n)
	}
	writeProto(w, http.StatusOK, adapter.Response(stats).Message())
}

func bodyError(r reason.Reason, msg string, cause error) *perror.Error {
	return perror.E(code.InvalidParameter, msg,
		perror.WithReasonOption(r),
		perror.WithDetailOption(perror.DetailField, "body"),
		perror.WithCauseOption(cause),
	)
}

func writeProto(w http.ResponseWriter, status int, m proto.Message) {
	b, err := marshal.Marshal(m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func accessLog(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			l := base.With(
				logging.RequestID(middleware.GetReqID(r.Context())),
				logging.Method(r.Method+" "+r.URL.Path),
				logging.Peer(r.RemoteAddr),
			)
			next.ServeHTTP(ww, r.WithContext(logging.WithContext(r.Context(), l)))

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			} else if ww.Status() >= http.StatusBadRequest {
				level = slog.LevelWarn
			}
			l.LogAttrs(r.Context(), level, "http request",
				slog.Int("status", ww.Status()),
				logging.DurationMS(float64(time.Since(start).Microseconds())/1000),
			)
		})
	}
}

// observe reports each call as "<METHOD> <route pattern>" with the numeric
// HTTP status as code.
func observe(rec metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			rec.ObserveRequest(r.Method+" "+route, strconv.Itoa(ww.Status()), time.Since(start))
		})
	}
}
