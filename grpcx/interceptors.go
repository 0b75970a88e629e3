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

package grpcx

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	gstatus "google.golang.org/grpc/status"

	logpluginv1 "dirpx.dev/logplugin/api/logplugin/v1"
	"dirpx.dev/logplugin/apis"
	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/internal/logging"
	"dirpx.dev/logplugin/perror"
	"dirpx.dev/logplugin/reason"
)

// RequestIDHeader is the metadata key carrying the request id in both
// directions.
const RequestIDHeader = "x-request-id"

// ReasonPanic marks internal errors produced from a recovered panic.
var ReasonPanic = reason.MustParse("rpc.handler.panic")

// Observer receives one observation per finished call.
type Observer interface {
	ObserveRequest(method, code string, d time.Duration)
}

// ServerInterceptors returns the plugin's unary interceptor chain, outermost
// first: logging, metrics, error mapping, recovery. Recovery sits innermost
// so a panic becomes a *perror.Error that the mapper then resolves.
func ServerInterceptors(m apis.Mapper, logger *slog.Logger, obs Observer) grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		MetricsInterceptor(obs),
		UnaryServerInterceptor(m),
		RecoveryInterceptor(),
	)
}

// RecoveryInterceptor converts a panic in the handler into an internal
// error for that request only.
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.FromContext(ctx).Error("handler panicked",
					logging.Method(info.FullMethod),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				resp = nil
				err = perror.E(code.Internal, "internal error",
					perror.WithReasonOption(ReasonPanic),
					perror.WithCauseOption(fmt.Errorf("panic: %v", r)),
				)
			}
		}()
		return handler(ctx, req)
	}
}

// LoggingInterceptor attaches a request-scoped logger to the context and logs
// one line per finished call. The request id is taken from the incoming
// x-request-id metadata or generated, and echoed back as a response header.
func LoggingInterceptor(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		id := requestID(ctx)

		l := base.With(logging.RequestID(id), logging.Method(info.FullMethod))
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			l = l.With(logging.Peer(p.Addr.String()))
		}
		ctx = logging.WithContext(ctx, l)
		// Fails outside a real server stream (unit tests); the header is best effort.
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))

		resp, err := handler(ctx, req)

		st := gstatus.Convert(err)
		attrs := []slog.Attr{
			logging.Code(st.Code().String()),
			logging.DurationMS(float64(time.Since(start).Microseconds()) / 1000),
		}
		if r, ok := req.(*logpluginv1.PluginRequest); ok {
			attrs = append(attrs, logging.Entries(len(r.Entries)))
		}
		if err != nil {
			attrs = append(attrs, logging.Error(err))
			if ei, ok := ExtractErrorInfo(err); ok && ei.GetMetadata()["reason"] != "" {
				attrs = append(attrs, logging.Reason(ei.GetMetadata()["reason"]))
			}
		}
		l.LogAttrs(ctx, levelFor(st.Code()), "rpc finished", attrs...)
		return resp, err
	}
}

// MetricsInterceptor reports method, final status code and duration to obs.
// A nil obs disables it.
func MetricsInterceptor(obs Observer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if obs == nil {
			return handler(ctx, req)
		}
		start := time.Now()
		resp, err := handler(ctx, req)
		obs.ObserveRequest(info.FullMethod, gstatus.Code(err).String(), time.Since(start))
		return resp, err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(RequestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}

func levelFor(c codes.Code) slog.Level {
	switch c {
	case codes.OK:
		return slog.LevelInfo
	case codes.InvalidArgument, codes.Canceled, codes.DeadlineExceeded:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
